package paper

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Paper is one drawing document. Element order is paint order: append order,
// except where undo/redo replacement or erase filtering rewrote the list
// (relative order of survivors is preserved).
type Paper struct {
	ID        string
	Name      string
	Elements  []Element
	Grid      GridSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newPaper(name string, now time.Time) *Paper {
	return &Paper{
		ID:        uuid.NewString(),
		Name:      name,
		Elements:  []Element{},
		Grid:      DefaultGridSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe to hand to callers.
func (p *Paper) Clone() *Paper {
	c := *p
	c.Elements = cloneElements(p.Elements)
	return &c
}

// paperJSON is the serialized document format. It round-trips exactly:
// elements are the three structural shapes with no extra fields.
type paperJSON struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Elements  []json.RawMessage `json:"elements"`
	Grid      GridSettings      `json:"gridSettings"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (p *Paper) MarshalJSON() ([]byte, error) {
	raws, err := encodeElements(p.Elements)
	if err != nil {
		return nil, err
	}
	return json.Marshal(paperJSON{
		ID:        p.ID,
		Name:      p.Name,
		Elements:  raws,
		Grid:      p.Grid,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

func (p *Paper) UnmarshalJSON(data []byte) error {
	var pj paperJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	els, err := decodeElements(pj.Elements)
	if err != nil {
		return err
	}
	p.ID = pj.ID
	p.Name = pj.Name
	p.Elements = els
	p.Grid = pj.Grid
	p.CreatedAt = pj.CreatedAt
	p.UpdatedAt = pj.UpdatedAt
	return nil
}
