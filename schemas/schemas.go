// Package schemas embeds the JSON Schemas describing the service's outputs.
package schemas

import _ "embed"

// EngineResultFile is the file name of the engine result schema.
const EngineResultFile = "engine_result.schema.json"

// EngineResult is the JSON Schema of an engine result document.
//
//go:embed engine_result.schema.json
var EngineResult string
