package query

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(rawQuery string) ListParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/users/get?"+rawQuery, nil)
	return ParseListParams(c)
}

func TestParseListParamsDefaults(t *testing.T) {
	params := paramsFor("")

	if params.Page != 1 {
		t.Errorf("expected default page 1, got %d", params.Page)
	}
	if params.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", params.Limit)
	}
	if params.Search != "" {
		t.Errorf("expected empty search, got %q", params.Search)
	}
	if params.Sort != "id" || params.Order != "asc" {
		t.Errorf("expected id/asc sort defaults, got %s/%s", params.Sort, params.Order)
	}
}

func TestParseListParamsClampsBadInput(t *testing.T) {
	params := paramsFor("page=0&limit=-5")
	if params.Page != 1 || params.Limit != 1 {
		t.Errorf("expected clamped values, got page=%d limit=%d", params.Page, params.Limit)
	}

	params = paramsFor("page=abc&limit=xyz")
	if params.Page != 1 || params.Limit != 1 {
		t.Errorf("expected clamped values for non-numeric input, got page=%d limit=%d", params.Page, params.Limit)
	}

	params = paramsFor("limit=5000")
	if params.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", params.Limit)
	}

	params = paramsFor("order=sideways")
	if params.Order != "asc" {
		t.Errorf("expected unknown order to fall back to asc, got %q", params.Order)
	}
}

func TestParseListParamsPassthrough(t *testing.T) {
	params := paramsFor("page=3&limit=50&search=alice&sort=email&order=desc")

	if params.Page != 3 || params.Limit != 50 {
		t.Errorf("unexpected paging: %+v", params)
	}
	if params.Search != "alice" || params.Sort != "email" || params.Order != "desc" {
		t.Errorf("unexpected filters: %+v", params)
	}
}

func TestBuildPaginationResponse(t *testing.T) {
	resp := BuildPaginationResponse(ListParams{Page: 2, Limit: 20}, 45)

	if resp.Total != 45 {
		t.Errorf("expected total 45, got %d", resp.Total)
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if !resp.HasNext || !resp.HasPrev {
		t.Errorf("page 2 of 3 has both neighbours, got %+v", resp)
	}

	resp = BuildPaginationResponse(ListParams{Page: 1, Limit: 20}, 0)
	if resp.TotalPages != 0 || resp.HasNext || resp.HasPrev {
		t.Errorf("empty result set: unexpected %+v", resp)
	}
}
