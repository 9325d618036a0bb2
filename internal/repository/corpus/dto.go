package corpus

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/askroute/askroute/internal/domain/document"
)

// Reserved hash field names; everything else on a record is a tag.
const (
	fieldContent = "__content"
	fieldSource  = "__source"
	fieldVector  = "__vector"
)

// toFields flattens a document and its vector into hash fields.
func toFields(doc *document.Document, vector []float32) map[string]string {
	fields := map[string]string{
		fieldContent: doc.Content(),
		fieldSource:  doc.Source(),
		fieldVector:  vectorToBytes(vector),
	}
	for k, v := range doc.Tags() {
		if !strings.HasPrefix(k, "__") {
			fields[k] = v
		}
	}
	return fields
}

// fromFields hydrates a document from hash fields.
func fromFields(id string, fields map[string]string) document.Document {
	var tags map[string]string
	for k, v := range fields {
		if strings.HasPrefix(k, "__") {
			continue
		}
		if tags == nil {
			tags = make(map[string]string)
		}
		tags[k] = v
	}
	return document.Reconstruct(id, fields[fieldContent], fields[fieldSource], tags)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
