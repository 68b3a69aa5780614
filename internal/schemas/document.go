package schemas

// DocumentSchema describes the canonical resume document as accepted by the
// check-layout command and produced by exports.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CvDocument",
  "type": "object",
  "required": ["contact"],
  "properties": {
    "contact": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "address": {"type": "string"},
        "links": {"type": "array", "items": {"type": "string"}}
      }
    },
    "language": {"type": "string"},
    "profile": {"type": "string"},
    "work": {"$ref": "#/definitions/experienceList"},
    "further": {"$ref": "#/definitions/experienceList"},
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution"],
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "start": {"type": "string"},
          "end": {"type": "string"},
          "note": {"type": "string"}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string"}},
    "languages": {"type": "array", "items": {"type": "string"}},
    "interests": {"type": "array", "items": {"type": "string"}},
    "consent_text": {"type": "string"},
    "photo_data_uri": {"type": "string"},
    "theme_id": {"type": "string"}
  },
  "definitions": {
    "experienceList": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "role"],
        "properties": {
          "company": {"type": "string"},
          "role": {"type": "string"},
          "location": {"type": "string"},
          "start": {"type": "string"},
          "end": {"type": "string"},
          "bullets": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// ValidateDocument checks a raw resume document against DocumentSchema.
func ValidateDocument(jsonContent string) error {
	return validateNamed("document", DocumentSchema, jsonContent)
}
