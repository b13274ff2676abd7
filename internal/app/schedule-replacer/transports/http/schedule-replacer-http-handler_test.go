package schedule_replacer_http_handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/gofiber/fiber/v3"
)

type fakeService struct {
	uploaded []byte
}

func (f *fakeService) SetForCurrent(_ context.Context, data []byte) (*app.ScheduleReplacerInfo, error) {
	if len(data) == 0 {
		return nil, app.ErrEmptyOverride
	}
	f.uploaded = data
	return &app.ScheduleReplacerInfo{ID: "id-1", Etag: "etag-1", Size: len(data)}, nil
}

func (f *fakeService) List(context.Context) ([]app.ScheduleReplacerInfo, error) {
	return []app.ScheduleReplacerInfo{{ID: "id-1", Etag: "etag-1", Size: 8}}, nil
}

func (f *fakeService) Clear(context.Context) (*app.ClearScheduleReplacerResponse, error) {
	return &app.ClearScheduleReplacerResponse{Count: 1}, nil
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "schedule.xls")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/v2/schedule-replacer/set", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestManualUpload(t *testing.T) {
	svc := &fakeService{}
	mainApp := fiber.New()
	New(svc).Register(mainApp)

	resp, err := mainApp.Test(uploadRequest(t, "file", []byte("workbook")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var info app.ScheduleReplacerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Size != 8 || string(svc.uploaded) != "workbook" {
		t.Errorf("info = %+v, uploaded = %q", info, svc.uploaded)
	}
}

func TestManualUploadRejectsMissingFile(t *testing.T) {
	mainApp := fiber.New()
	New(&fakeService{}).Register(mainApp)

	resp, err := mainApp.Test(uploadRequest(t, "other", []byte("workbook")))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
