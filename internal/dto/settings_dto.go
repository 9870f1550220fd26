package dto

type UpdateSettingsRequest struct {
	Name         *string `json:"name"`
	DefaultGenre *string `json:"defaultGenre"`
	StoryLength  *string `json:"storyLength"`
	AutoRefine   *bool   `json:"autoRefine"`
	Theme        *string `json:"theme"`
	AudioSpeed   *string `json:"audioSpeed"`
	Voice        *string `json:"voice"`
	Password     *string `json:"password"`
}

type ProfilePictureResponse struct {
	Message    string `json:"message"`
	ProfilePic string `json:"profilePic"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
