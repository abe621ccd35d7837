package types

// PredictRequest is the payload accepted by POST /predict.
type PredictRequest struct {
	// Names to classify. Exactly one of Name, Names or Column must be set.
	// example: ["Shah Rukh Khan", "Amitabh Bachchan"]
	Names []string `json:"names,omitempty"`
	// Single name shorthand for a one-element batch.
	// example: Shah Rukh Khan
	Name string `json:"name,omitempty"`
	// Tabular single-column input.
	Column *Column `json:"column,omitempty"`
	// Language of the input names. Defaults to "eng".
	// example: eng
	Lang Lang `json:"lang,omitempty"`
	// If true, force a re-download of the model bundle and reload the
	// resident model before predicting.
	// example: false
	Latest bool `json:"latest,omitempty"`
}

// PredictResponse wraps the result rows returned by POST /predict.
type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unsupported language: "fra" (use "eng" or "hin")
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Whether a model is currently resident.
	// example: true
	Loaded bool `json:"loaded"`
	// Language of the resident model, empty when nothing is loaded.
	// example: eng
	Lang string `json:"lang,omitempty"`
	// Filesystem root of the extracted model bundle.
	ModelRoot string `json:"model_root,omitempty"`
	// Bundle version name served by this process.
	// example: eng_and_hindi_models_v1
	Bundle string `json:"bundle"`
	// Total model loads (downloads and deserializations) this process.
	// example: 2
	LoadsTotal uint64 `json:"loads_total"`
	// Total same-language cache hits this process.
	// example: 117
	CacheHitsTotal uint64 `json:"cache_hits_total"`
	// Last load error observed, if any.
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix"`
}
