package schema

import "time"

type DocCategory string

const (
	CategoryTaxReturns   DocCategory = "TAX_RETURNS"
	CategoryAuditReports DocCategory = "AUDIT_REPORTS"
	CategoryGSTReturns   DocCategory = "GST_RETURNS"
	CategoryCompliance   DocCategory = "COMPLIANCE"
	CategoryInvoices     DocCategory = "INVOICES"
	CategoryOther        DocCategory = "OTHER"
)

type DocumentOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Document struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   *string       `json:"description"`
	FileName      string        `json:"fileName"`
	FilePath      string        `json:"filePath"`
	FileSize      int64         `json:"fileSize"`
	FileType      string        `json:"fileType"`
	Category      DocCategory   `json:"category"`
	FinancialYear *string       `json:"financialYear"`
	FolderID      *string       `json:"folderId"`
	UploadedBy    string        `json:"uploadedBy"`
	UserID        string        `json:"userId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	User          DocumentOwner `json:"user"`
	Folder        *FolderRef    `json:"folder"`
}

type FolderCount struct {
	Documents int `json:"documents"`
	Children  int `json:"children"`
}

type DocumentFolder struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	ParentID  *string     `json:"parentId"`
	UserID    string      `json:"userId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Count     FolderCount `json:"_count"`
}
