package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedWizard is returned when a stored wizard blob is not valid JSON
	ErrMalformedWizard = errors.New("malformed wizard state")
	// ErrCorruptWizard is returned when trying to persist a corrupt wizard
	ErrCorruptWizard = errors.New("corrupt wizard state cannot be stored")
)

// WizardKind tags the wizard variant in its persisted form
type WizardKind string

const (
	WizardAddAdmin       WizardKind = "add_admin"
	WizardRemoveAdmin    WizardKind = "remove_admin"
	WizardSendNotice     WizardKind = "notice_all"
	WizardCreateGiveaway WizardKind = "gw_create"
	WizardCorrupt        WizardKind = "corrupt"
)

// GiveawayStep is a step of the giveaway creation wizard
type GiveawayStep string

const (
	StepTitle   GiveawayStep = "title"
	StepDetails GiveawayStep = "details"
)

// WizardState is the conversation state of one chat.
// Concrete variants: *AddAdminWizard, *RemoveAdminWizard, *SendNoticeWizard,
// *CreateGiveawayWizard and *CorruptWizard.
type WizardState interface {
	Kind() WizardKind
	InvalidAttempts() int
	SetInvalidAttempts(n int)
}

type attempts struct {
	n int
}

func (a *attempts) InvalidAttempts() int     { return a.n }
func (a *attempts) SetInvalidAttempts(n int) { a.n = n }

// AddAdminWizard awaits a numeric user ID to grant admin rights to
type AddAdminWizard struct{ attempts }

func (*AddAdminWizard) Kind() WizardKind { return WizardAddAdmin }

// RemoveAdminWizard awaits a numeric user ID to revoke admin rights from
type RemoveAdminWizard struct{ attempts }

func (*RemoveAdminWizard) Kind() WizardKind { return WizardRemoveAdmin }

// SendNoticeWizard awaits the notice text to broadcast
type SendNoticeWizard struct{ attempts }

func (*SendNoticeWizard) Kind() WizardKind { return WizardSendNotice }

// CreateGiveawayWizard collects a title and then details for a new draft
type CreateGiveawayWizard struct {
	attempts
	Step       GiveawayStep
	GiveawayID string
	Title      string
}

func (*CreateGiveawayWizard) Kind() WizardKind { return WizardCreateGiveaway }

// CorruptWizard is a decodable blob whose type or step is not recognised
type CorruptWizard struct {
	attempts
	RawKind string
	RawStep string
}

func (*CorruptWizard) Kind() WizardKind { return WizardCorrupt }

// wizardEnvelope is the JSON form stored per chat
type wizardEnvelope struct {
	Type     string            `json:"t"`
	Step     string            `json:"step,omitempty"`
	GID      string            `json:"gid,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
	Attempts int               `json:"attempts,omitempty"`
}

// EncodeWizard serialises a wizard state
func EncodeWizard(w WizardState) ([]byte, error) {
	env := wizardEnvelope{Attempts: w.InvalidAttempts()}

	switch v := w.(type) {
	case *AddAdminWizard:
		env.Type = string(WizardAddAdmin)
	case *RemoveAdminWizard:
		env.Type = string(WizardRemoveAdmin)
	case *SendNoticeWizard:
		env.Type = string(WizardSendNotice)
	case *CreateGiveawayWizard:
		env.Type = string(WizardCreateGiveaway)
		env.Step = string(v.Step)
		env.GID = v.GiveawayID
		env.Data = map[string]string{}
		if v.Title != "" {
			env.Data["title"] = v.Title
		}
	case *CorruptWizard:
		return nil, ErrCorruptWizard
	default:
		return nil, fmt.Errorf("%w: unsupported variant %T", ErrCorruptWizard, w)
	}

	return json.Marshal(env)
}

// DecodeWizard parses a stored blob. Invalid JSON yields ErrMalformedWizard;
// an unknown type or step yields a *CorruptWizard.
func DecodeWizard(raw []byte) (WizardState, error) {
	var env wizardEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWizard, err)
	}

	var w WizardState
	switch WizardKind(env.Type) {
	case WizardAddAdmin:
		w = &AddAdminWizard{}
	case WizardRemoveAdmin:
		w = &RemoveAdminWizard{}
	case WizardSendNotice:
		w = &SendNoticeWizard{}
	case WizardCreateGiveaway:
		w = decodeCreateGiveaway(env)
	default:
		w = &CorruptWizard{RawKind: env.Type, RawStep: env.Step}
	}

	if env.Attempts > 0 {
		w.SetInvalidAttempts(env.Attempts)
	}
	return w, nil
}

func decodeCreateGiveaway(env wizardEnvelope) WizardState {
	corrupt := &CorruptWizard{RawKind: env.Type, RawStep: env.Step}
	if env.GID == "" {
		return corrupt
	}

	title := env.Data["title"]
	switch GiveawayStep(env.Step) {
	case StepTitle:
	case StepDetails:
		// details without a collected title cannot be finalised
		if title == "" {
			return corrupt
		}
	default:
		return corrupt
	}

	return &CreateGiveawayWizard{
		Step:       GiveawayStep(env.Step),
		GiveawayID: env.GID,
		Title:      title,
	}
}
