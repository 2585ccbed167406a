package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type DisqualifyParticipantRequest struct {
	Reason string `json:"reason"`
}

func (req *DisqualifyParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required, validation.Length(1, 500)),
	)
}

type MatchResultRequest struct {
	Won *bool `json:"won"`
}

func (req *MatchResultRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Won, validation.NotNil),
	)
}
