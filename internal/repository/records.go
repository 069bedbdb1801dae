package repository

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mxkcz/notehub/internal/domain"
)

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func boolProp(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

func timeProp(props map[string]any, key string) time.Time {
	t, _ := props[key].(time.Time)
	return t
}

func stringsProp(props map[string]any, key string) []string {
	raw, ok := props[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func noteFromNode(node neo4j.Node) *domain.Note {
	props := node.Props
	n := &domain.Note{
		ID:         stringProp(props, "id"),
		OwnerID:    stringProp(props, "owner_id"),
		Title:      stringProp(props, "title"),
		Content:    stringProp(props, "content"),
		Compressed: boolProp(props, "compressed"),
		Slug:       stringProp(props, "slug"),
		Tags:       stringsProp(props, "tags"),
		Visibility: domain.Visibility(stringProp(props, "visibility")),
		CreatedAt:  timeProp(props, "created_at"),
		UpdatedAt:  timeProp(props, "updated_at"),
	}
	if folderID, ok := props["folder_id"].(string); ok {
		n.FolderID = &folderID
	}
	return n
}

func publicNoteFromNode(node neo4j.Node) *domain.PublicNote {
	props := node.Props
	return &domain.PublicNote{
		ID:            stringProp(props, "id"),
		PrivateNoteID: stringProp(props, "private_note_id"),
		OwnerID:       stringProp(props, "owner_id"),
		Title:         stringProp(props, "title"),
		Content:       stringProp(props, "content"),
		Compressed:    boolProp(props, "compressed"),
		Slug:          stringProp(props, "slug"),
		Tags:          stringsProp(props, "tags"),
		CreatedAt:     timeProp(props, "created_at"),
		UpdatedAt:     timeProp(props, "updated_at"),
	}
}

func folderFromNode(node neo4j.Node) *domain.Folder {
	props := node.Props
	return &domain.Folder{
		ID:        stringProp(props, "id"),
		OwnerID:   stringProp(props, "owner_id"),
		Name:      stringProp(props, "name"),
		CreatedAt: timeProp(props, "created_at"),
	}
}

func userFromNode(node neo4j.Node) *domain.User {
	props := node.Props
	return &domain.User{
		ID:           stringProp(props, "id"),
		Email:        stringProp(props, "email"),
		Name:         stringProp(props, "name"),
		PasswordHash: stringProp(props, "password_hash"),
		CreatedAt:    timeProp(props, "created_at"),
	}
}

// firstNode pulls the "n" column of the first record, or reports absence.
func firstNode(ctx context.Context, res neo4j.ResultWithContext) (neo4j.Node, error) {
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return neo4j.Node{}, err
		}
		return neo4j.Node{}, domain.ErrNotFound
	}
	val, ok := res.Record().Get("n")
	if !ok {
		return neo4j.Node{}, domain.ErrNotFound
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return neo4j.Node{}, domain.ErrNotFound
	}
	return node, nil
}
