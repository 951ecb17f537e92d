package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Service   *string   `json:"service"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	IsReplied bool      `json:"isReplied"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactUpdate struct {
	IsRead    *bool `json:"isRead,omitempty"`
	IsReplied *bool `json:"isReplied,omitempty"`
}

type BlogPost struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  *string    `json:"coverImage"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ViewCount   int        `json:"viewCount,omitempty"`
	AuthorID    *string    `json:"authorId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Tool is a downloadable or paid software tool; Price is nil for free tools.
type Tool struct {
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	ShortDescription string           `json:"shortDescription"`
	LongDescription  string           `json:"longDescription"`
	Version          string           `json:"version"`
	Category         string           `json:"category"`
	ToolType         string           `json:"toolType"`
	Price            *decimal.Decimal `json:"price"`
	LicenseType      string           `json:"licenseType"`
	DownloadURL      *string          `json:"downloadUrl"`
	Requirements     []string         `json:"requirements"`
	Features         []string         `json:"features"`
	IconImage        *string          `json:"iconImage"`
	DownloadCount    int              `json:"downloadCount,omitempty"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// IsFree reports whether the tool has no price or a zero price.
func (t *Tool) IsFree() bool {
	return t.Price == nil || t.Price.IsZero()
}

type Download struct {
	ID            string    `json:"id,omitempty"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	FileName      string    `json:"fileName"`
	FilePath      string    `json:"filePath"`
	FileSize      int64     `json:"fileSize"`
	FileType      string    `json:"fileType"`
	Category      string    `json:"category"`
	SortOrder     int       `json:"sortOrder"`
	IsActive      bool      `json:"isActive"`
	DownloadCount int       `json:"downloadCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DownloadLead struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	Company      *string    `json:"company"`
	ToolID       string     `json:"toolId"`
	Verified     bool       `json:"verified"`
	DownloadedAt *time.Time `json:"downloadedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ClientGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DashboardStats struct {
	TotalUsers          int           `json:"totalUsers"`
	TotalDocuments      int           `json:"totalDocuments"`
	TotalAppointments   int           `json:"totalAppointments"`
	TotalContacts       int           `json:"totalContacts"`
	TotalBlogPosts      int           `json:"totalBlogPosts"`
	TotalTools          int           `json:"totalTools"`
	PendingAppointments int           `json:"pendingAppointments"`
	UnreadContacts      int           `json:"unreadContacts"`
	RecentUsers         []User        `json:"recentUsers"`
	RecentAppointments  []Appointment `json:"recentAppointments"`
}

type SMTPSettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Secure    bool   `json:"secure"`
	User      string `json:"user"`
	Password  string `json:"password,omitempty"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
}

type SocialSettings struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	GitHub    string `json:"github,omitempty"`
}
