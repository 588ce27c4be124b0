package transport

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionRequest struct {
	IDToken string `json:"id_token"`
}

type TaskRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	DueDate             string `json:"due_date"`
	CustomerInteraction bool   `json:"customer_interaction"`
	CustomerName        string `json:"customer_name"`
}

type StageRequest struct {
	Stage string `json:"stage"`
}

type AdvisorRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}
