package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		p := PageRequest{}
		p.Defaults()
		if p.Page != 1 || p.PageSize != DefaultPageSize {
			t.Errorf("expected 1/%d, got %d/%d", DefaultPageSize, p.Page, p.PageSize)
		}
		if p.Offset() != 0 {
			t.Errorf("expected offset 0, got %d", p.Offset())
		}
	})

	t.Run("caps page size", func(t *testing.T) {
		p := PageRequest{Page: 3, PageSize: 10000}
		p.Defaults()
		if p.PageSize != MaxPageSize {
			t.Errorf("expected %d, got %d", MaxPageSize, p.PageSize)
		}
		if p.Offset() != 2*MaxPageSize {
			t.Errorf("expected offset %d, got %d", 2*MaxPageSize, p.Offset())
		}
	})
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 100, 0)
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Error("expected empty non-nil data")
	}
	if resp.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", resp.TotalPages)
	}

	resp = NewPageResponse([]string{"a", "b"}, 2, 2, 5)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
}
