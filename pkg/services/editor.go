package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/config"
	"reko-cms/pkg/models"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrInvalidOp       = errors.New("invalid editor op")
)

// SessionIdleTimeout is how long an untouched session survives.
var SessionIdleTimeout = 24 * time.Hour

// EditorSession is one author editing one article. All access to the editor
// goes through mu, so events from one session apply in arrival order.
type EditorSession struct {
	mu      sync.Mutex
	id      string
	article models.Article // last loaded or saved fields, Content unused
	editor  *blocks.Editor
	touched time.Time
}

var (
	sessions   = map[string]*EditorSession{}
	sessionsMu sync.Mutex
)

// OpenSession starts editing slug, or a new draft when slug is empty.
func OpenSession(slug string) (models.EditorState, error) {
	var art models.Article
	doc := blocks.New()
	if slug != "" {
		loaded, err := LoadArticle(slug)
		if err != nil {
			return models.EditorState{}, err
		}
		art = *loaded
		doc = loaded.Content
	}

	editor := blocks.NewEditor(doc)
	editor.SetHistoryLimit(config.HistoryLimit)
	s := &EditorSession{
		id:      uuid.NewString(),
		article: art,
		editor:  editor,
		touched: time.Now(),
	}

	sessionsMu.Lock()
	pruneSessionsLocked(time.Now())
	sessions[s.id] = s
	sessionsMu.Unlock()

	log.Info("Opened editor session", "session", s.id, "slug", slug, "blocks", doc.Len())
	return s.state(false), nil
}

func SessionState(id string) (models.EditorState, error) {
	s, err := getSession(id)
	if err != nil {
		return models.EditorState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(false), nil
}

func CloseSession(id string) error {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	if _, ok := sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sessions, id)
	return nil
}

// ApplyOp checks op against the current document and applies it. Indices
// and styles from the client are validated here; the editor itself treats
// them as programming errors.
func ApplyOp(id string, op models.EditorOp) (models.EditorState, error) {
	if err := validate.Struct(op); err != nil {
		return models.EditorState{}, fmt.Errorf("%w: %v", ErrInvalidOp, err)
	}
	s, err := getSession(id)
	if err != nil {
		return models.EditorState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	handled, err := applyOp(s.editor, op)
	if err != nil {
		log.Debug("Rejected editor op", "session", id, "op", op.Op, "error", err)
		return models.EditorState{}, err
	}
	s.touched = time.Now()
	return s.state(handled), nil
}

func applyOp(e *blocks.Editor, op models.EditorOp) (bool, error) {
	doc := e.Document()
	needBlock := func(i int) error {
		if !doc.ValidIndex(i) {
			return fmt.Errorf("%w: block %d out of range", ErrInvalidOp, i)
		}
		return nil
	}
	needPoint := func(i, p int) error {
		if !doc.ValidPoint(i, p) {
			return fmt.Errorf("%w: point %d of block %d out of range", ErrInvalidOp, p, i)
		}
		return nil
	}

	switch op.Op {
	case "insert":
		e.InsertAt(op.Block)
	case "delete":
		if err := needBlock(op.Block); err != nil {
			return false, err
		}
		e.DeleteAt(op.Block)
	case "move":
		if err := needBlock(op.Block); err != nil {
			return false, err
		}
		if err := needBlock(op.To); err != nil {
			return false, err
		}
		e.MoveTo(op.Block, op.To)
	case "update":
		if err := needBlock(op.Block); err != nil {
			return false, err
		}
		if err := e.UpdateField(op.Block, blocks.Field(op.Field), op.Value); err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidOp, err)
		}
	case "add_point":
		if err := needPoint(op.Block, 0); err != nil {
			return false, err
		}
		e.AddPoint(op.Block, op.Point)
	case "update_point":
		if err := needPoint(op.Block, op.Point); err != nil {
			return false, err
		}
		e.UpdatePoint(op.Block, op.Point, op.Value)
	case "remove_point":
		if err := needPoint(op.Block, op.Point); err != nil {
			return false, err
		}
		e.RemovePoint(op.Block, op.Point)
	case "key":
		return e.HandleKey(*op.Key), nil
	case "drag_start":
		if err := needBlock(op.Block); err != nil {
			return false, err
		}
		e.DragStart(op.Block)
	case "drag_enter":
		e.DragEnter()
	case "drag_leave":
		e.DragLeave()
	case "drag_over":
		e.DragOver()
	case "drop":
		if err := needBlock(op.To); err != nil {
			return false, err
		}
		if source, ok := e.DragSource(); ok {
			if err := needBlock(source); err != nil {
				return false, err
			}
		}
		return e.Drop(op.To), nil
	case "undo":
		return e.Undo(), nil
	case "redo":
		return e.Redo(), nil
	default:
		return false, fmt.Errorf("%w: unknown op %q", ErrInvalidOp, op.Op)
	}
	return true, nil
}

// SaveSession writes the session's document with the given status. On
// failure the session keeps its document so the author can retry.
func SaveSession(id string, req models.SaveEditorRequest, status string) (*models.Article, error) {
	s, err := getSession(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	art := s.article
	if art.Slug == "" {
		if req.Slug == "" {
			return nil, fmt.Errorf("%w: slug is required", ErrInvalidArticle)
		}
		if _, err := readArticleFile(req.Slug); err == nil {
			return nil, ErrExists
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		art.Slug = req.Slug
	}
	if req.Title != "" {
		art.Title = req.Title
	}
	if req.CategoryID != "" {
		art.CategoryID = req.CategoryID
	}
	if req.Topics != nil {
		art.Topics = req.Topics
	}
	if req.FeaturedImage != "" {
		art.FeaturedImage = req.FeaturedImage
	}
	if req.Format != "" {
		art.Format = req.Format
	}
	art.Extra = copyExtra(art.Extra)
	art.Status = status
	art.Content = s.editor.Document()

	if err := SaveArticle(&art); err != nil {
		log.Warn("Editor save failed", "session", id, "slug", art.Slug, "error", err)
		return nil, err
	}
	s.article = art
	s.touched = time.Now()
	return &art, nil
}

// PublishSession saves the session as published, then commits and pushes the
// article file.
func PublishSession(id string, req models.SaveEditorRequest, token string) (*models.Article, string, error) {
	art, err := SaveSession(id, req, models.StatusPublished)
	if err != nil {
		return nil, "", err
	}
	path := config.ContentDir + "/" + art.Slug + ".md"
	out, err := CommitAndPush(token, "Publish "+art.Slug, path)
	if err != nil {
		log.Error("Publish push failed", "slug", art.Slug, "error", err)
		return art, out, err
	}
	return art, out, nil
}

// SessionDiff compares the saved file with what saving the session would
// write. A session that was never saved diffs against an empty file.
func SessionDiff(id string) (string, error) {
	s, err := getSession(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	saved := s.article
	edited := s.article
	edited.Content = s.editor.Document()
	s.mu.Unlock()

	var before []byte
	if saved.Slug != "" {
		if current, err := LoadArticle(saved.Slug); err == nil {
			if before, err = EncodeArticle(current); err != nil {
				return "", err
			}
			edited.Extra = current.Extra
		}
	}
	if edited.Status == "" {
		edited.Status = models.StatusDraft
	}
	if edited.Format == "" {
		edited.Format = config.DefaultFormat
	}
	after, err := EncodeArticle(&edited)
	if err != nil {
		return "", err
	}
	return Diff(before, after)
}

func getSession(id string) (*EditorSession, error) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	s, ok := sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func pruneSessionsLocked(now time.Time) {
	for id, s := range sessions {
		s.mu.Lock()
		idle := now.Sub(s.touched)
		s.mu.Unlock()
		if idle > SessionIdleTimeout {
			delete(sessions, id)
			log.Debug("Pruned idle editor session", "session", id)
		}
	}
}

func (s *EditorSession) state(handled bool) models.EditorState {
	return models.EditorState{
		ID:            s.id,
		Slug:          s.article.Slug,
		Content:       s.editor.Document(),
		Focus:         s.editor.Focus(),
		Handled:       handled,
		CanUndo:       s.editor.CanUndo(),
		CanRedo:       s.editor.CanRedo(),
		DragHighlight: s.editor.DragHighlighted(),
	}
}

func copyExtra(extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
