package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"reflect"
	"testing"
)

func jpeg(name string) ImageCandidate {
	return ImageCandidate{Name: name, ContentType: "image/jpeg", Size: 1024}
}

func TestPreviewSetAcceptsImagesAndSkipsOthers(t *testing.T) {
	set := NewPreviewSet(PreviewOptions{})
	result, err := set.Accept([]ImageCandidate{
		jpeg("a.jpg"),
		{Name: "note.txt", ContentType: "text/plain; charset=utf-8"},
		jpeg("b.jpg"),
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	want := []string{"车辆照片 1", "车辆照片 2"}
	if !reflect.DeepEqual(result.Accepted, want) {
		t.Fatalf("accepted want %v got %v", want, result.Accepted)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != SkipReasonNotImage {
		t.Fatalf("unexpected skipped: %+v", result.Skipped)
	}
	if !reflect.DeepEqual(set.Labels(), want) {
		t.Fatalf("labels want %v got %v", want, set.Labels())
	}
}

func TestPreviewSetRejectsOversizedBatch(t *testing.T) {
	set := NewPreviewSet(PreviewOptions{})
	batch := []ImageCandidate{jpeg("1"), jpeg("2"), jpeg("3"), jpeg("4")}
	result, err := set.Accept(batch)
	if !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("want ErrTooManyImages got %v", err)
	}
	if len(result.Accepted) != 0 || len(set.Labels()) != 0 {
		t.Fatalf("rejected batch must not add images: %+v", result)
	}
}

func TestPreviewSetRejectsBatchOverCapacity(t *testing.T) {
	set := NewPreviewSet(PreviewOptions{})
	if _, err := set.Accept([]ImageCandidate{jpeg("1"), jpeg("2")}); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}
	_, err := set.Accept([]ImageCandidate{jpeg("3"), jpeg("4")})
	if !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("want ErrTooManyImages got %v", err)
	}
	if len(set.Labels()) != 2 {
		t.Fatalf("set should keep previous labels, got %v", set.Labels())
	}
	result, err := set.Accept([]ImageCandidate{jpeg("3")})
	if err != nil {
		t.Fatalf("third image should fit: %v", err)
	}
	if !reflect.DeepEqual(result.Accepted, []string{"车辆照片 3"}) {
		t.Fatalf("unexpected accepted: %v", result.Accepted)
	}
}

func TestPreviewSetAllowedTypesAndSize(t *testing.T) {
	set := NewPreviewSet(PreviewOptions{AllowedTypes: []string{"image/png"}, MaxSize: 100})
	result, err := set.Accept([]ImageCandidate{
		{Name: "a.png", ContentType: "image/png", Size: 10},
		{Name: "b.bmp", ContentType: "image/bmp", Size: 10},
		{Name: "c.png", ContentType: "image/png", Size: 1000},
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if len(result.Accepted) != 1 {
		t.Fatalf("want 1 accepted got %v", result.Accepted)
	}
	reasons := []string{result.Skipped[0].Reason, result.Skipped[1].Reason}
	if !reflect.DeepEqual(reasons, []string{SkipReasonNotImage, SkipReasonTooLarge}) {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestPreviewSetRemoveAndReset(t *testing.T) {
	set := NewPreviewSet(PreviewOptions{})
	set.Accept([]ImageCandidate{jpeg("1"), jpeg("2"), jpeg("3")})
	if !set.Remove("车辆照片 2") {
		t.Fatalf("remove should succeed")
	}
	if set.Remove("车辆照片 9") {
		t.Fatalf("remove of unknown label should fail")
	}
	if !reflect.DeepEqual(set.Labels(), []string{"车辆照片 1", "车辆照片 2"}) {
		t.Fatalf("labels should be renumbered, got %v", set.Labels())
	}
	set.Reset()
	if len(set.Labels()) != 0 {
		t.Fatalf("reset should clear labels")
	}
	set.Restore([]string{"x", "", "y", "z", "w"})
	if !reflect.DeepEqual(set.Labels(), []string{"车辆照片 1", "车辆照片 2", "车辆照片 3"}) {
		t.Fatalf("restore should cap and renumber, got %v", set.Labels())
	}
}

func buildUploads(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file failed: %v", err)
		}
		part.Write(data)
	}
	writer.Close()
	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["files"]
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageServicePreviewSniffsContent(t *testing.T) {
	svc := NewImageService(PreviewOptions{MaxImages: 3})
	uploads := buildUploads(t, map[string][]byte{
		"car.png":  pngHeader,
		"fake.jpg": []byte("just some text"),
	})
	result, err := svc.Preview(context.Background(), []string{"车辆照片 1"}, uploads)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !reflect.DeepEqual(result.Accepted, []string{"车辆照片 2"}) {
		t.Fatalf("unexpected accepted: %v", result.Accepted)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Name != "fake.jpg" {
		t.Fatalf("text file should be skipped: %+v", result.Skipped)
	}
	if len(result.Labels) != 2 {
		t.Fatalf("labels should include existing image, got %v", result.Labels)
	}
}

func TestImageServicePreviewTooMany(t *testing.T) {
	svc := NewImageService(PreviewOptions{MaxImages: 3})
	uploads := buildUploads(t, map[string][]byte{"a.png": pngHeader, "b.png": pngHeader})
	_, err := svc.Preview(context.Background(), []string{"车辆照片 1", "车辆照片 2"}, uploads)
	if !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("want ErrTooManyImages got %v", err)
	}
}
