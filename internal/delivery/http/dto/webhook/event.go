package webhook

// Event is the provider-controlled webhook body. The identifier and status
// may arrive at different nesting levels depending on the delivery shape, so
// the accessors resolve them in a fixed order.
type Event struct {
	ID        string                 `json:"id"`
	PaymentID string                 `json:"payment_id"`
	Event     string                 `json:"event"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	Object    *EventObject           `json:"object"`
}

type EventObject struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ExtractPaymentID tries object.id, then id, then payment_id.
func (e *Event) ExtractPaymentID() string {
	if e.Object != nil && e.Object.ID != "" {
		return e.Object.ID
	}
	if e.ID != "" {
		return e.ID
	}
	return e.PaymentID
}

// ExtractStatus tries object.status, then status.
func (e *Event) ExtractStatus() string {
	if e.Object != nil && e.Object.Status != "" {
		return e.Object.Status
	}
	return e.Status
}

// CorrelationID returns the caller-supplied paymentId from metadata, used as
// a fallback when the webhook references a gateway id not persisted locally
// yet. Tries object.metadata.paymentId, then metadata.paymentId.
func (e *Event) CorrelationID() string {
	if e.Object != nil {
		if id := metaString(e.Object.Metadata, "paymentId"); id != "" {
			return id
		}
	}
	return metaString(e.Metadata, "paymentId")
}

func metaString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}
