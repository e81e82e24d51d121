package broadcast

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

// statusUnsetAlias is how campaign files spell the empty confirmation status.
const statusUnsetAlias = "unset"

// URLButton is an optional link button attached to a campaign message.
type URLButton struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Campaign is one scheduled broadcast: a message sent at RunAt to every
// registrant whose confirmation status passes the include/exclude filters.
type Campaign struct {
	Name    string    `yaml:"name"`
	RunAt   time.Time `yaml:"run_at"`
	Message string    `yaml:"message"`

	// IncludeStatuses empty means every status; ExcludeStatuses wins over
	// IncludeStatuses. Use "unset" for registrants who never answered.
	IncludeStatuses []string `yaml:"include_statuses"`
	ExcludeStatuses []string `yaml:"exclude_statuses"`

	ConfirmButtons  bool       `yaml:"confirm_buttons"`
	FeedbackButtons bool       `yaml:"feedback_buttons"`
	URLButton       *URLButton `yaml:"url_button"`
}

// Matches reports whether a registrant with the given confirmation status is
// a recipient of this campaign.
func (c Campaign) Matches(status registration.ConfirmationStatus) bool {
	for _, s := range c.ExcludeStatuses {
		if statusEqual(s, status) {
			return false
		}
	}
	if len(c.IncludeStatuses) == 0 {
		return true
	}
	for _, s := range c.IncludeStatuses {
		if statusEqual(s, status) {
			return true
		}
	}
	return false
}

func statusEqual(spec string, status registration.ConfirmationStatus) bool {
	if spec == statusUnsetAlias {
		return status == registration.StatusUnset
	}
	return registration.NormalizeStatus(spec) == status
}

// Validate checks the fields a campaign cannot run without.
func (c Campaign) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("campaign: name is required")
	}
	if c.RunAt.IsZero() {
		return fmt.Errorf("campaign %q: run_at is required", c.Name)
	}
	if c.Message == "" {
		return fmt.Errorf("campaign %q: message is required", c.Name)
	}
	if c.ConfirmButtons && c.FeedbackButtons {
		return fmt.Errorf("campaign %q: confirm_buttons and feedback_buttons are mutually exclusive", c.Name)
	}
	if c.URLButton != nil && (c.URLButton.Label == "" || c.URLButton.URL == "") {
		return fmt.Errorf("campaign %q: url_button needs both label and url", c.Name)
	}
	return nil
}

type campaignsFile struct {
	Campaigns []Campaign `yaml:"campaigns"`
}

// LoadCampaigns reads and validates a campaign schedule from a YAML file.
// Campaign names must be unique; they key task deduplication.
func LoadCampaigns(path string) ([]Campaign, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("campaigns: read %s: %w", path, err)
	}

	var f campaignsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("campaigns: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Campaigns))
	for _, c := range f.Campaigns {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("campaigns: duplicate name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return f.Campaigns, nil
}
