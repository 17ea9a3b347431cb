package square

import (
	"bufio"
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kochabx/square/errors"
)

// imageField is the multipart field carrying the item image
const imageField = "file_name"

// ListItems lists the items of the v1 location
func (c *Client) ListItems(ctx context.Context) (*Response, error) {
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "items", Method: "GET", LocationScoped: true})
}

// GetItem returns one item
func (c *Client) GetItem(ctx context.Context, itemID string) (*Response, error) {
	id, err := c.segment("item_id", itemID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "items/" + id, Method: "GET", LocationScoped: true})
}

// UpdateItem modifies the non-zero fields of item
func (c *Client) UpdateItem(ctx context.Context, itemID string, item Item) (*Response, error) {
	id, err := c.segment("item_id", itemID)
	if err != nil {
		return nil, err
	}

	body := item.body()
	if len(body) == 0 {
		return nil, ErrInvalidArgument.WithMetadata(map[string]string{"item": "no fields to update"})
	}

	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "items/" + id, Method: "PUT", LocationScoped: true, Body: body})
}

// DeleteItem deletes an item and its variations
func (c *Client) DeleteItem(ctx context.Context, itemID string) (*Response, error) {
	id, err := c.segment("item_id", itemID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestSpec{Version: V1, Endpoint: "items/" + id, Method: "DELETE", LocationScoped: true})
}

// UpdateItemImage uploads the file at path as the master image of an item
func (c *Client) UpdateItemImage(ctx context.Context, itemID, path string) (*Response, error) {
	if err := c.check("filepath", path, "required"); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, 400, "square: open item image").WithMetadata(map[string]string{"path": path})
	}
	defer f.Close()

	return c.UpdateItemImageReader(ctx, itemID, filepath.Base(path), f)
}

// UpdateItemImageReader uploads r as the master image of an item
func (c *Client) UpdateItemImageReader(ctx context.Context, itemID, filename string, r io.Reader) (*Response, error) {
	id, err := c.segment("item_id", itemID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrInvalidArgument.WithMetadata(map[string]string{"image": "reader is nil"})
	}

	contentType, r := imageContentType(filename, r)

	return c.Do(ctx, RequestSpec{
		Version:        V1,
		Endpoint:       "items/" + id + "/image",
		Method:         "POST",
		LocationScoped: true,
		Multipart: []Part{{
			Name:        imageField,
			Filename:    filename,
			ContentType: contentType,
			Contents:    r,
		}},
	})
}

// imageContentType picks the part type from the filename extension,
// sniffing the leading bytes of r when the extension is unknown.
func imageContentType(filename string, r io.Reader) (string, io.Reader) {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct, r
	}

	br := bufio.NewReaderSize(r, 512)
	head, _ := br.Peek(512)
	return http.DetectContentType(head), br
}
