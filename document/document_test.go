package document

import (
	"strings"
	"testing"

	"github.com/drblury/geoweaver/link"
)

func TestNewServiceDescriptor(t *testing.T) {
	d, err := NewServiceDescriptor("Images", "1.0", CoreOperations()...)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if d.ID() != "Images" {
		t.Fatalf("unexpected id %q", d.ID())
	}
	if d.Version().Major() != 1 || d.Version().Minor() != 0 {
		t.Fatalf("unexpected version %s", d.Version())
	}
	for _, op := range CoreOperations() {
		if !d.HasOperation(op) {
			t.Fatalf("expected operation %s", op)
		}
	}
	if d.HasOperation("getTile") {
		t.Fatal("did not expect getTile")
	}

	ops := d.Operations()
	if ops[0] != OpDescribeCollection || len(ops) != 5 {
		t.Fatalf("expected sorted operations, got %v", ops)
	}
	if got := d.String(); got != "ServiceDescriptor[id=Images,version=1.0,operations="+strings.Join(ops, ",")+"]" {
		t.Fatalf("unexpected debug string %q", got)
	}
}

func TestNewServiceDescriptorValidation(t *testing.T) {
	if _, err := NewServiceDescriptor("", "1.0"); err == nil {
		t.Fatal("expected error for empty id")
	}
	if _, err := NewServiceDescriptor("Images", "one"); err == nil {
		t.Fatal("expected error for invalid version")
	}
}

func TestMetadataRequestString(t *testing.T) {
	req := &MetadataRequest{
		ParentID:          "SENTINEL2",
		ID:                "S2A_1",
		AcceptedMediaType: "application/json",
		BaseURL:           "http://localhost:8080/geoserver",
		ServicePath:       "ogc/images",
	}

	want := "MetadataRequest[parentId=SENTINEL2,id=S2A_1,httpAccept=application/json,baseUrl=http://localhost:8080/geoserver,servicePath=ogc/images]"
	if got := req.String(); got != want {
		t.Fatalf("unexpected debug string:\n got %s\nwant %s", got, want)
	}

	var nilReq *MetadataRequest
	if nilReq.String() != "MetadataRequest<nil>" {
		t.Fatal("expected nil request to render safely")
	}
}

func TestMetadataRequestServiceURLPath(t *testing.T) {
	req := &MetadataRequest{ServicePath: "/ogc/images/"}

	if got := req.ServiceURLPath("collections", "roads"); got != "ogc/images/collections/roads" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := req.ServiceURLPath("collections", "ws/roads", "tiles", "{level}"); got != "ogc/images/collections/ws%2Froads/tiles/{level}" {
		t.Fatalf("expected identifier to stay one segment, got %q", got)
	}
	if got := req.ServiceURLPath("collections", "{x}y"); got != "ogc/images/collections/%7Bx%7Dy" {
		t.Fatalf("expected braces inside identifiers to be escaped, got %q", got)
	}
	if got := (&MetadataRequest{}).ServiceURLPath("api"); got != "api" {
		t.Fatalf("unexpected path without service path %q", got)
	}
}

func TestCollectionAddLink(t *testing.T) {
	c := &Collection{Name: "roads"}
	c.AddLink(link.New("a", link.RelSelf, "application/json", ""))
	c.AddLink(link.New("a", link.RelSelf, "application/json", ""))

	if len(c.Links) != 2 {
		t.Fatalf("expected duplicate links to be kept, got %d", len(c.Links))
	}
}
