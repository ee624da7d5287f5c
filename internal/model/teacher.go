package model

// Teacher is a tutor record as stored by the external backend.
type Teacher struct {
	UserID             string  `json:"user_id"`
	Firstname          string  `json:"firstname"`
	Lastname           string  `json:"lastname"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	PostalCode         string  `json:"postal_code"`
	HourlyPay          string  `json:"hourly_pay"`
	Resigned           bool    `json:"resigned"`
	AdditionalComments *string `json:"additional_comments"`
	CreatedAt          string  `json:"created_at"`
	Admin              bool    `json:"admin"`
	ResignedAt         *string `json:"resigned_at"`
}

// FullName returns "Firstname Lastname".
func (t *Teacher) FullName() string {
	return t.Firstname + " " + t.Lastname
}

// TeacherLoginRequest is the payload for exchanging an identity-provider
// token for a dashboard token. IDToken is forwarded to the backend, which
// rejects it unless it belongs to UserID.
type TeacherLoginRequest struct {
	UserID  string `json:"user_id" binding:"required,max=128"`
	IDToken string `json:"id_token" binding:"max=4096"`
}

// TeacherLoginResponse is returned after a successful teacher login.
type TeacherLoginResponse struct {
	Token       string   `json:"token"`
	Teacher     Teacher  `json:"teacher"`
	Permissions []string `json:"permissions"`
}

// DefaultTeacherHourlyPay is what a newly signed up teacher is paid until an
// admin changes it.
const DefaultTeacherHourlyPay = "250"

// SignupTeacherResponse is what the backend returns for a created teacher.
type SignupTeacherResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// SignupTeacherRequest mirrors the teacher signup form.
type SignupTeacherRequest struct {
	IDToken            string `json:"id_token" binding:"required"`
	Firstname          string `json:"firstname" binding:"required,max=100"`
	Lastname           string `json:"lastname" binding:"required,max=100"`
	Email              string `json:"email" binding:"required,email,max=255"`
	Phone              string `json:"phone" binding:"required,digits=8"`
	Address            string `json:"address" binding:"required,max=255"`
	PostalCode         string `json:"postal_code" binding:"required,digits=4"`
	Password           string `json:"password" binding:"required,min=6,max=128"`
	RepeatPassword     string `json:"repeat_password" binding:"required,eqfield=Password"`
	AdditionalComments string `json:"additional_comments" binding:"max=2000"`
}
