package schemas

// EnvelopeSchema constrains every model reply the wizard accepts. The
// payload is kept loose here; each call site decodes it into a typed struct
// with its own checks afterwards.
const EnvelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "WizardResponseEnvelope",
  "type": "object",
  "required": ["response_type", "user_message"],
  "additionalProperties": false,
  "properties": {
    "response_type": {
      "type": "string",
      "enum": ["question", "proposal", "confirmation", "status_update", "error", "completion"]
    },
    "user_message": {
      "type": "object",
      "required": ["text"],
      "additionalProperties": false,
      "properties": {
        "text": {"type": "string", "minLength": 1},
        "sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["heading", "body"],
            "additionalProperties": false,
            "properties": {
              "heading": {"type": "string"},
              "body": {"type": "string"}
            }
          }
        },
        "questions": {"type": "array", "items": {"type": "string"}}
      }
    },
    "payload": {"type": ["object", "null"]},
    "metadata": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "validation_status": {"type": "string"}
      }
    },
    "refusal": {"type": ["string", "null"]}
  }
}`

// ValidateEnvelope checks a raw model reply against EnvelopeSchema.
func ValidateEnvelope(jsonContent string) error {
	return validateNamed("envelope", EnvelopeSchema, jsonContent)
}
