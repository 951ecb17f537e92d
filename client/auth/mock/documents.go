package mock

import (
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/viant/portal/schema"
)

type storedDocument struct {
	schema.Document
	content []byte
}

// callerCanAccess reports whether the caller may see documents of ownerID.
func (p *PortalService) callerCanAccess(callerID, ownerID string) bool {
	return callerID == ownerID || p.users[callerID].Role == schema.RoleAdmin
}

func (p *PortalService) documentsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := r.Context().Value(userIDKey).(string)
	ownerID := r.URL.Query().Get("userId")
	if ownerID == "" {
		ownerID = callerID
	}
	folderID := r.URL.Query().Get("folderId")
	p.mux.Lock()
	defer p.mux.Unlock()
	if !p.callerCanAccess(callerID, ownerID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	result := []schema.Document{}
	for _, document := range p.documents {
		if document.UserID != ownerID {
			continue
		}
		if folderID != "" && (document.FolderID == nil || *document.FolderID != folderID) {
			continue
		}
		result = append(result, document.Document)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	writeJSON(w, http.StatusOK, result)
}

func (p *PortalService) uploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := r.Context().Value(userIDKey).(string)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	ownerID := r.FormValue("userId")
	if ownerID == "" {
		ownerID = callerID
	}
	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	p.mux.Lock()
	defer p.mux.Unlock()
	if !p.callerCanAccess(callerID, ownerID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	now := time.Now().UTC()
	document := schema.Document{
		ID:         uuid.NewString(),
		Title:      title,
		FileName:   header.Filename,
		FileSize:   int64(len(content)),
		FileType:   header.Header.Get("Content-Type"),
		Category:   schema.CategoryOther,
		UploadedBy: callerID,
		UserID:     ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if name := r.FormValue("folder"); name != "" {
		folder := p.folder(ownerID, name, now)
		document.FolderID = &folder.ID
		document.Folder = &schema.FolderRef{ID: folder.ID, Name: folder.Name}
		folder.Count.Documents++
	}
	p.documents[document.ID] = &storedDocument{Document: document, content: content}
	writeJSON(w, http.StatusCreated, document)
}

// folder returns the top-level folder name of ownerID, creating it when missing.
func (p *PortalService) folder(ownerID, name string, now time.Time) *schema.DocumentFolder {
	for _, folder := range p.folders {
		if folder.UserID == ownerID && folder.Name == name && folder.ParentID == nil {
			return folder
		}
	}
	folder := &schema.DocumentFolder{ID: uuid.NewString(), Name: name, UserID: ownerID, CreatedAt: now, UpdatedAt: now}
	p.folders = append(p.folders, folder)
	return folder
}

func (p *PortalService) foldersHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := r.Context().Value(userIDKey).(string)
	ownerID := r.URL.Query().Get("userId")
	if ownerID == "" {
		ownerID = callerID
	}
	parentID := r.URL.Query().Get("parentId")
	p.mux.Lock()
	defer p.mux.Unlock()
	if !p.callerCanAccess(callerID, ownerID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	result := []schema.DocumentFolder{}
	for _, folder := range p.folders {
		if folder.UserID != ownerID {
			continue
		}
		folderParent := ""
		if folder.ParentID != nil {
			folderParent = *folder.ParentID
		}
		if folderParent != parentID {
			continue
		}
		result = append(result, *folder)
	}
	writeJSON(w, http.StatusOK, result)
}

func (p *PortalService) downloadHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := r.Context().Value(userIDKey).(string)
	p.mux.Lock()
	document, ok := p.documents[mux.Vars(r)["id"]]
	allowed := ok && p.callerCanAccess(callerID, document.UserID)
	p.mux.Unlock()
	if !allowed {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	contentType := document.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document.content)
}
