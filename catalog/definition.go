package catalog

import "encoding/json"

// Definition describes one event category accepted by the ingestion API.
type Definition struct {
	// Kind is the stable identifier of the category.
	Kind Kind `json:"kind"`

	// Path is the endpoint path appended to the client base URL.
	Path string `json:"path"`

	// Category is the default event_category value of records of this kind,
	// empty for kinds that carry none.
	Category string `json:"category,omitempty"`

	// Description is a human-readable explanation of the category.
	Description string `json:"description"`

	// Schema is an optional JSON Schema describing a single record. When
	// set and schema validation is enabled on the client, serialized
	// payloads are checked against it before they are signed.
	Schema json.RawMessage `json:"schema,omitempty"`
}
