package resources

// Records as the platform API returns them. The client never derives
// persistent state from these; between mutations only cached copies exist.

type SocialMedia struct {
	ID        string `json:"_id,omitempty"`
	Platform  string `json:"platform"`
	Link      string `json:"link"`
	Followers int    `json:"followers"`
}

type Creator struct {
	ID             string        `json:"_id"`
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	PhoneNumber    string        `json:"phoneNumber"`
	Bio            string        `json:"bio,omitempty"`
	Description    string        `json:"description,omitempty"`
	SocialMedia    []SocialMedia `json:"socialMedia,omitempty"`
	Interests      []string      `json:"interests,omitempty"`
	Status         string        `json:"status"`
	Image          []string      `json:"image,omitempty"`
	TotalFollowers int           `json:"totalFollowers,omitempty"`
	Tier           string        `json:"tier,omitempty"`
	CreatedAt      string        `json:"createdAt,omitempty"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
}

type Agent struct {
	ID          string `json:"_id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Country     string `json:"country"`
	Designation string `json:"designation"`
	BrandName   string `json:"brandName"`
	WorkingFrom string `json:"workingFrom"`
	Status      string `json:"status"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type Trip struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type Partnership struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type Contact struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	SelectOption string `json:"selectOption"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// MediaItem lives at the upstream "/event" path; records carry either an
// uploaded video or a remote url.
type MediaItem struct {
	ID        string `json:"_id"`
	Video     string `json:"video,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Profile struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	Verified     bool   `json:"verified"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty"`
	Location     string `json:"location,omitempty"`
	Bio          string `json:"bio,omitempty"`
}
