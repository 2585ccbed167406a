package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreateRequest() CreateTournamentRequest {
	return CreateTournamentRequest{
		Name:            "Spring Cup",
		GameTitle:       "Valorant",
		MaxParticipants: 16,
		StartDate:       time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestCreateTournamentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *CreateTournamentRequest)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(req *CreateTournamentRequest) {},
		},
		{
			name: "name too short",
			mutate: func(req *CreateTournamentRequest) {
				req.Name = "ab"
			},
			wantErr: true,
		},
		{
			name: "name with leading whitespace",
			mutate: func(req *CreateTournamentRequest) {
				req.Name = " Spring Cup"
			},
			wantErr: true,
		},
		{
			name: "name with trailing whitespace",
			mutate: func(req *CreateTournamentRequest) {
				req.Name = "Spring Cup "
			},
			wantErr: true,
		},
		{
			name: "inner whitespace is fine",
			mutate: func(req *CreateTournamentRequest) {
				req.Name = "Spring  Cup 2026"
			},
		},
		{
			name: "missing game title",
			mutate: func(req *CreateTournamentRequest) {
				req.GameTitle = ""
			},
			wantErr: true,
		},
		{
			name: "zero capacity",
			mutate: func(req *CreateTournamentRequest) {
				req.MaxParticipants = 0
			},
			wantErr: true,
		},
		{
			name: "negative prize pool",
			mutate: func(req *CreateTournamentRequest) {
				req.PrizePool = -100
			},
			wantErr: true,
		},
		{
			name: "missing start date",
			mutate: func(req *CreateTournamentRequest) {
				req.StartDate = time.Time{}
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTournamentRequestToDomain(t *testing.T) {
	req := validCreateRequest()
	req.Type = "ROUND_ROBIN"

	tournament := req.ToDomain(42)

	assert.Equal(t, "Spring Cup", tournament.Name)
	assert.Equal(t, uint(42), tournament.OrganizerID)
	assert.EqualValues(t, "ROUND_ROBIN", tournament.Type)
}

func TestDisqualifyParticipantRequestValidate(t *testing.T) {
	req := DisqualifyParticipantRequest{}
	assert.Error(t, req.Validate())

	req.Reason = "no-show"
	assert.NoError(t, req.Validate())
}

func TestMatchResultRequestValidate(t *testing.T) {
	req := MatchResultRequest{}
	assert.Error(t, req.Validate())

	won := false
	req.Won = &won
	assert.NoError(t, req.Validate())
}
