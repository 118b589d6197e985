package transform

// Result is the per-record outcome of a transformation.
type Result string

const (
	ResultOk               Result = "Ok"
	ResultProcessingFailed Result = "ProcessingFailed"
)

// Record is one opaque, base64-encoded record entering the transformer.
type Record struct {
	RecordID string `json:"recordId"`
	Data     string `json:"data"`
}

// TransformedRecord is the per-record output: same id, an outcome, and the
// (re-encoded) data.
type TransformedRecord struct {
	RecordID string `json:"recordId"`
	Result   Result `json:"result"`
	Data     string `json:"data"`
}

// Batch is the transformation input.
type Batch struct {
	Records []Record `json:"records"`
}

// BatchOutput reports one outcome per input record, in input order.
type BatchOutput struct {
	Records []TransformedRecord `json:"records"`
}
