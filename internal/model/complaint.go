package model

import "time"

// Complaint status values.  Any status may transition to any other; the
// operator decides the workflow.
const (
    ComplaintOpen       = "open"
    ComplaintInProgress = "in-progress"
    ComplaintResolved   = "resolved"
)

// ComplaintStatuses lists the accepted status values in display order.
var ComplaintStatuses = []string{ComplaintOpen, ComplaintInProgress, ComplaintResolved}

// Complaint is an issue filed by a student and assigned to a manager.
//
// Fields:
//  ID          – primary key identifier.
//  StudentID   – student who filed the complaint.
//  ManagerID   – manager handling the complaint.
//  Title       – short summary.
//  Description – full text of the complaint.
//  Date        – date the complaint was filed.
//  Status      – open, in-progress or resolved.
type Complaint struct {
    ID          uint64    // complaints.id
    StudentID   uint64    // complaints.student_id
    ManagerID   uint64    // complaints.manager_id
    Title       string    // complaints.title
    Description string    // complaints.description
    Date        time.Time // complaints.date
    Status      string    // complaints.status
}
