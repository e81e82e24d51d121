package broadcast

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

var allStatuses = []registration.ConfirmationStatus{
	registration.StatusUnset,
	registration.StatusWait,
	registration.StatusComing,
	registration.StatusDeclined,
}

func TestCampaignMatches(t *testing.T) {
	tests := []struct {
		name     string
		campaign Campaign
		want     map[registration.ConfirmationStatus]bool
	}{
		{
			name:     "no filters match everyone",
			campaign: Campaign{},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    true,
				registration.StatusWait:     true,
				registration.StatusComing:   true,
				registration.StatusDeclined: true,
			},
		},
		{
			name:     "include only coming",
			campaign: Campaign{IncludeStatuses: []string{"coming"}},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    false,
				registration.StatusWait:     false,
				registration.StatusComing:   true,
				registration.StatusDeclined: false,
			},
		},
		{
			name:     "exclude declined",
			campaign: Campaign{ExcludeStatuses: []string{"declined"}},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    true,
				registration.StatusWait:     true,
				registration.StatusComing:   true,
				registration.StatusDeclined: false,
			},
		},
		{
			name:     "unset alias targets silent registrants",
			campaign: Campaign{IncludeStatuses: []string{"unset", "wait"}},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    true,
				registration.StatusWait:     true,
				registration.StatusComing:   false,
				registration.StatusDeclined: false,
			},
		},
		{
			name: "exclude wins over include",
			campaign: Campaign{
				IncludeStatuses: []string{"coming", "declined"},
				ExcludeStatuses: []string{"declined"},
			},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    false,
				registration.StatusWait:     false,
				registration.StatusComing:   true,
				registration.StatusDeclined: false,
			},
		},
		{
			name:     "legacy status spellings normalize",
			campaign: Campaign{IncludeStatuses: []string{"yes"}},
			want: map[registration.ConfirmationStatus]bool{
				registration.StatusUnset:    false,
				registration.StatusWait:     false,
				registration.StatusComing:   true,
				registration.StatusDeclined: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, status := range allStatuses {
				assert.Equal(t, tt.want[status], tt.campaign.Matches(status), "status %q", status)
			}
		})
	}
}

func TestCampaignValidate(t *testing.T) {
	valid := Campaign{Name: "reminder", RunAt: time.Now(), Message: "hi"}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	missingRunAt := valid
	missingRunAt.RunAt = time.Time{}
	assert.Error(t, missingRunAt.Validate())

	bothKeyboards := valid
	bothKeyboards.ConfirmButtons = true
	bothKeyboards.FeedbackButtons = true
	assert.Error(t, bothKeyboards.Validate())

	halfButton := valid
	halfButton.URLButton = &URLButton{Label: "Map"}
	assert.Error(t, halfButton.Validate())
}

func TestLoadCampaigns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campaigns.yaml")
	data := `campaigns:
  - name: "reminder-48h"
    run_at: 2026-02-24T10:00:00Z
    message: "The meetup is in two days!"
    exclude_statuses: ["declined"]
    confirm_buttons: true
  - name: "feedback"
    run_at: 2026-02-27T10:00:00Z
    message: "How was it?"
    include_statuses: ["coming"]
    feedback_buttons: true
    url_button:
      label: "Photos"
      url: "https://example.com/photos"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	campaigns, err := LoadCampaigns(path)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	assert.Equal(t, "reminder-48h", campaigns[0].Name)
	assert.Equal(t, time.Date(2026, 2, 24, 10, 0, 0, 0, time.UTC), campaigns[0].RunAt)
	assert.True(t, campaigns[0].ConfirmButtons)
	assert.False(t, campaigns[0].Matches(registration.StatusDeclined))

	require.NotNil(t, campaigns[1].URLButton)
	assert.Equal(t, "Photos", campaigns[1].URLButton.Label)
}

func TestLoadCampaignsRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campaigns.yaml")
	data := `campaigns:
  - name: "same"
    run_at: 2026-02-24T10:00:00Z
    message: "one"
  - name: "same"
    run_at: 2026-02-25T10:00:00Z
    message: "two"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := LoadCampaigns(path)
	assert.ErrorContains(t, err, "duplicate")
}
