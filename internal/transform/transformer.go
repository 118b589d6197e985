package transform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"

	pkgLog "dora-metrics-collector/pkg/log"
)

// Transformer normalizes raw streamed records into canonical JSON lines
// before they reach durable storage.
type Transformer struct {
	l pkgLog.Logger
}

func New(l pkgLog.Logger) *Transformer {
	return &Transformer{l: l}
}

// TransformBatch processes every record independently: decode, parse,
// re-serialize as a newline-terminated canonical JSON line, re-encode. A bad
// record is marked ProcessingFailed with its original data; it never fails
// the rest of the batch, and nothing here retries.
func (t *Transformer) TransformBatch(ctx context.Context, batch Batch) BatchOutput {
	output := BatchOutput{Records: make([]TransformedRecord, 0, len(batch.Records))}

	for _, record := range batch.Records {
		line, err := canonicalLine(record.Data)
		if err != nil {
			t.l.Errorf(ctx, "Record %s validation failed: %v", record.RecordID, err)
			output.Records = append(output.Records, TransformedRecord{
				RecordID: record.RecordID,
				Result:   ResultProcessingFailed,
				Data:     record.Data,
			})
			continue
		}
		output.Records = append(output.Records, TransformedRecord{
			RecordID: record.RecordID,
			Result:   ResultOk,
			Data:     line,
		})
	}

	ok := 0
	for _, r := range output.Records {
		if r.Result == ResultOk {
			ok++
		}
	}
	t.l.Infof(ctx, "Processing completed: %d/%d records ok", ok, len(output.Records))

	return output
}

// canonicalLine turns one base64 payload into a base64-encoded, single-line
// UTF-8 JSON record with a trailing record separator.
func canonicalLine(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(parsed); err != nil {
		return "", err
	}

	// Encode appends exactly one newline, the record separator.
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
