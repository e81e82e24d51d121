package registration

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfirmationStatus tracks whether a registrant still plans to attend.
// It is mutated after registration by the confirm buttons; the store does not
// enforce any transition order (last write wins).
type ConfirmationStatus string

const (
	StatusUnset    ConfirmationStatus = ""
	StatusWait     ConfirmationStatus = "wait"
	StatusComing   ConfirmationStatus = "coming"
	StatusDeclined ConfirmationStatus = "declined"
)

// Sheet column layout. One worksheet, row 1 is the header, one registrant per
// row below it. Columns are 1-based to match the row-store addressing.
const (
	ColUserID        = 1
	ColUsername      = 2
	ColFullName      = 3
	ColEmail         = 4
	ColPosition      = 5
	ColCompany       = 6
	ColExperience    = 7
	ColJobSearch     = 8
	ColKnewCompany   = 9
	ColConfirmed     = 10
	ColFeedbackFirst = 11 // five feedback columns start here

	FeedbackCount = 5
	RowWidth      = ColFeedbackFirst + FeedbackCount - 1
)

// Registrant is one attendee record, the unit stored per row.
type Registrant struct {
	UserID      int64
	Username    string // platform handle with leading @, may be empty
	FullName    string
	Email       string
	Position    string
	Company     string
	Experience  string
	JobSearch   string
	KnewCompany string
	Confirmed   ConfirmationStatus
	Feedback    [FeedbackCount]string
}

// Row serializes the registrant into the fixed-width row the store expects.
func (r Registrant) Row() []string {
	row := make([]string, RowWidth)
	row[ColUserID-1] = strconv.FormatInt(r.UserID, 10)
	row[ColUsername-1] = r.Username
	row[ColFullName-1] = r.FullName
	row[ColEmail-1] = r.Email
	row[ColPosition-1] = r.Position
	row[ColCompany-1] = r.Company
	row[ColExperience-1] = r.Experience
	row[ColJobSearch-1] = r.JobSearch
	row[ColKnewCompany-1] = r.KnewCompany
	row[ColConfirmed-1] = string(r.Confirmed)
	for i := 0; i < FeedbackCount; i++ {
		row[ColFeedbackFirst-1+i] = r.Feedback[i]
	}
	return row
}

// ParseRow builds a Registrant from a raw store row. Short rows are padded;
// a row whose key column does not parse as an integer is rejected.
func ParseRow(row []string) (Registrant, error) {
	cell := func(col int) string {
		if col-1 < len(row) {
			return strings.TrimSpace(row[col-1])
		}
		return ""
	}

	id, err := strconv.ParseInt(cell(ColUserID), 10, 64)
	if err != nil {
		return Registrant{}, fmt.Errorf("registrant: bad user_id %q: %w", cell(ColUserID), err)
	}

	r := Registrant{
		UserID:      id,
		Username:    cell(ColUsername),
		FullName:    cell(ColFullName),
		Email:       cell(ColEmail),
		Position:    cell(ColPosition),
		Company:     cell(ColCompany),
		Experience:  cell(ColExperience),
		JobSearch:   cell(ColJobSearch),
		KnewCompany: cell(ColKnewCompany),
		Confirmed:   NormalizeStatus(cell(ColConfirmed)),
	}
	for i := 0; i < FeedbackCount; i++ {
		r.Feedback[i] = cell(ColFeedbackFirst + i)
	}
	return r, nil
}

// NormalizeStatus maps a raw stored cell to a ConfirmationStatus. Values are
// compared case-insensitively; legacy yes/no spellings are accepted because
// earlier deployments wrote them.
func NormalizeStatus(raw string) ConfirmationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "unset":
		return StatusUnset
	case "wait", "pending":
		return StatusWait
	case "coming", "yes":
		return StatusComing
	case "declined", "no":
		return StatusDeclined
	default:
		return ConfirmationStatus(strings.ToLower(strings.TrimSpace(raw)))
	}
}
