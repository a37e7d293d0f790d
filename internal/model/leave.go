package model

// LeaveType distinguishes paid from unpaid leave.
type LeaveType string

const (
	LeaveNormal LeaveType = "NORMAL"
	LeaveUnpaid LeaveType = "ÜCRETSİZ"
)

// Leave is a single leave period for one person. Days is the inclusive
// span endDate-startDate+1 unless the sheet supplied an explicit count.
type Leave struct {
	ID             string    `json:"id"`
	PersonID       string    `json:"personId,omitempty"`
	FullName       string    `json:"fullName"`
	NormalizedName string    `json:"normalizedName"`
	BaseKey        string    `json:"baseKey"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Days           int       `json:"days"`
	Type           LeaveType `json:"type"`
	Note           string    `json:"note,omitempty"`
	Source         SourceRef `json:"source"`
}
