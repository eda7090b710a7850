package model

import "time"

// Field is one form field of a DeliveryRecord.
type Field struct {
	Name  string
	Value string
}

// DeliveryRecord is the flattened, all-string form of a submission sent to
// the spreadsheet. Fields follow SurveyResponses.Keys, led by the timestamp.
type DeliveryRecord struct {
	Fields []Field
}

// NewDeliveryRecord stamps the responses with at and flattens every answer.
func NewDeliveryRecord(responses *SurveyResponses, at time.Time) DeliveryRecord {
	fields := make([]Field, 0, responses.Len()+1)
	fields = append(fields, Field{Name: FieldTimestamp, Value: at.UTC().Format(TimestampLayout)})
	for _, id := range responses.Keys() {
		fields = append(fields, Field{Name: id, Value: responses.answers[id].Flatten()})
	}
	return DeliveryRecord{Fields: fields}
}

// Get returns the first field named name.
func (r DeliveryRecord) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
