package query

import "testing"

func TestNewPagination_Defaults(t *testing.T) {
	p := NewPagination(0, 0)
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p = NewPagination(-3, -1)
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("negative input should fall back to defaults: %+v", p)
	}
}

func TestPagination_Offset(t *testing.T) {
	if got := NewPagination(1, 10).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := NewPagination(3, 10).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestNewPageInfo_CeilDivision(t *testing.T) {
	info := NewPageInfo(NewPagination(1, 10), 25)
	if info.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25/10, got %d", info.TotalPages)
	}
	if info.Total != 25 || info.Page != 1 || info.Limit != 10 {
		t.Fatalf("unexpected envelope: %+v", info)
	}
}

func TestNewPageInfo_ExactMultiple(t *testing.T) {
	info := NewPageInfo(NewPagination(2, 10), 30)
	if info.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 30/10, got %d", info.TotalPages)
	}
}

func TestNewPageInfo_EmptyResult(t *testing.T) {
	info := NewPageInfo(NewPagination(1, 10), 0)
	if info.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", info.TotalPages)
	}
}

func TestNewPageInfo_PageEchoedUnclamped(t *testing.T) {
	// An out-of-range page selects zero rows but is echoed back unchanged.
	info := NewPageInfo(NewPagination(9, 10), 25)
	if info.Page != 9 {
		t.Fatalf("expected page 9 echoed, got %d", info.Page)
	}
	if info.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", info.TotalPages)
	}
}
