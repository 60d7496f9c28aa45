package roboto

import "time"

// createDatasetRequest is the body used when a dataset must be created.
type createDatasetRequest struct {
	Description string         `json:"description,omitempty"`
	DeviceID    string         `json:"device_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Name        string         `json:"name,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

// createIfNotExistsRequest is the body of POST /v1/datasets/create_if_not_exists.
type createIfNotExistsRequest struct {
	MatchRoboQLQuery      string               `json:"match_roboql_query"`
	CreateRequest         createDatasetRequest `json:"create_request"`
	CreateDeviceIfMissing bool                 `json:"create_device_if_missing"`
}

// importFileRequest is the body of POST /v1/files/import.
type importFileRequest struct {
	DatasetID    string         `json:"dataset_id"`
	URI          string         `json:"uri"`
	RelativePath string         `json:"relative_path"`
	Description  string         `json:"description,omitempty"`
	DeviceID     string         `json:"device_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
}

// datasetRecord is the dataset representation returned by the API.
type datasetRecord struct {
	DatasetID string    `json:"dataset_id"`
	OrgID     string    `json:"org_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	DeviceID  string    `json:"device_id,omitempty"`
	Created   time.Time `json:"created,omitempty"`
}

// envelope wraps successful responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

// errorBody is the error representation returned by the API.
type errorBody struct {
	Error struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	} `json:"error"`
}
