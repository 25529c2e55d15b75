package events

// Contract lifecycle event types written to the outbox.
const (
	EventContractSubmitted  = "contract.submitted"
	EventContractApproved   = "contract.approved"
	EventContractRejected   = "contract.rejected"
	EventContractDeleted    = "contract.deleted"
	EventSlotSigned         = "signature.slot_signed"
	EventSlotRemoved        = "signature.slot_removed"
	EventSignaturesComplete = "signature.all_signed"
)

// ContractPayload captures the minimal data consumers need for contract events.
type ContractPayload struct {
	ContractID string `json:"contract_id"`
	Code       string `json:"code"`
	Status     string `json:"status"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p ContractPayload) ToMap() map[string]any {
	return map[string]any{
		"contract_id": p.ContractID,
		"code":        p.Code,
		"status":      p.Status,
	}
}

// SlotPayload captures the minimal data consumers need for signature events.
type SlotPayload struct {
	ContractID string `json:"contract_id"`
	SlotID     string `json:"slot_id"`
	SignerName string `json:"signer_name"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p SlotPayload) ToMap() map[string]any {
	payload := map[string]any{
		"contract_id": p.ContractID,
		"slot_id":     p.SlotID,
	}
	if p.SignerName != "" {
		payload["signer_name"] = p.SignerName
	}
	return payload
}
