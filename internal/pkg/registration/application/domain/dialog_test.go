package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationDialogStraightWalk(t *testing.T) {
	want := []State{
		StateRegName,
		StateRegEmail,
		StateRegPosition,
		StateRegCompany,
		StateRegExperience,
		StateRegJobSearch,
		StateRegKnewCompany,
		StateComplete,
	}

	state := Registration.Initial()
	var visited []State
	for state != StateComplete {
		visited = append(visited, state)
		step, ok := Registration.Step(state)
		require.True(t, ok, "no step for state %q", state)
		state = step.Next
	}
	visited = append(visited, StateComplete)

	assert.Equal(t, want, visited)
}

func TestRegistrationDialogFieldsCoverRecord(t *testing.T) {
	// Seven semantic fields must be collected on any complete walk.
	fields := map[string]bool{}
	for _, step := range Registration.Steps {
		fields[step.Field] = true
	}
	for _, f := range []string{"full_name", "email", "position", "company", "experience", "job_search", "knew_company"} {
		assert.True(t, fields[f], "field %q is never asked", f)
	}
}

func TestPositionStepBranchesOnOther(t *testing.T) {
	step, ok := Registration.Step(StateRegPosition)
	require.True(t, ok)

	next, branched := step.Branches[PositionOther]
	require.True(t, branched)
	assert.Equal(t, StateRegCustomPosition, next)

	// Both paths converge on the company step.
	custom, ok := Registration.Step(StateRegCustomPosition)
	require.True(t, ok)
	assert.Equal(t, StateRegCompany, custom.Next)
	assert.Equal(t, StateRegCompany, step.Next)
	assert.Equal(t, step.Field, custom.Field)
}

func TestEmailValidation(t *testing.T) {
	step, ok := Registration.Step(StateRegEmail)
	require.True(t, ok)
	require.NotNil(t, step.Validate)

	assert.Error(t, step.Validate("not-an-email"))
	assert.NoError(t, step.Validate("a@b"))
}

func TestOnlyEmailStepValidates(t *testing.T) {
	for _, step := range Registration.Steps {
		if step.State == StateRegEmail {
			continue
		}
		assert.Nil(t, step.Validate, "state %q should accept any non-empty text", step.State)
	}
}

func TestFeedbackDialogIsLinear(t *testing.T) {
	state := Feedback.Initial()
	steps := 0
	for state != StateComplete {
		step, ok := Feedback.Step(state)
		require.True(t, ok)
		require.Empty(t, step.Branches)
		state = step.Next
		steps++
	}
	assert.Equal(t, 5, steps)
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]ConfirmationStatus{
		"":          StatusUnset,
		"  ":        StatusUnset,
		"wait":      StatusWait,
		"pending":   StatusWait,
		"coming":    StatusComing,
		"yes":       StatusComing,
		"Yes":       StatusComing,
		"declined":  StatusDeclined,
		"no":        StatusDeclined,
		" DECLINED": StatusDeclined,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw %q", raw)
	}
}

func TestRowRoundTrip(t *testing.T) {
	r := Registrant{
		UserID:      42,
		Username:    "@jdoe",
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Position:    "💻 Development",
		Company:     "Acme",
		Experience:  "1-3 years",
		JobSearch:   "Yes",
		KnewCompany: "No",
		Confirmed:   StatusComing,
		Feedback:    [FeedbackCount]string{"5", "keynote", "4", "Yes", ""},
	}

	row := r.Row()
	require.Len(t, row, RowWidth)

	parsed, err := ParseRow(row)
	require.NoError(t, err)
	assert.Equal(t, r, parsed)
}

func TestParseRowRejectsBadKey(t *testing.T) {
	_, err := ParseRow([]string{"user_id", "username", "full_name"})
	assert.Error(t, err)
}

func TestParseRowPadsShortRows(t *testing.T) {
	r, err := ParseRow([]string{"7", "@x", "X Y"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.UserID)
	assert.Equal(t, StatusUnset, r.Confirmed)
	assert.Empty(t, r.Feedback[0])
}
