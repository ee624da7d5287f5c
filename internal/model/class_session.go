package model

// ClassSession is a single tutoring session as returned by the backend's
// /get-all-classes endpoint. Timestamps are kept as the raw strings the
// backend sent; parsing happens where they are consumed so one bad record
// cannot fail the whole decode.
type ClassSession struct {
	ClassID         string `json:"class_id,omitempty"`
	TeacherUserID   string `json:"teacher_user_id,omitempty"`
	StudentUserID   string `json:"student_user_id,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
	Comment         string `json:"comment"`
	InvoicedStudent bool   `json:"invoiced_student"`
	PaidTeacher     bool   `json:"paid_teacher"`
}
