package filename

import (
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRoot string
		wantExt  string
	}{
		{"Plain", "myFile.png", "myFile", "png"},
		{"WithPath", "mypath/myFile.png", "mypath/myFile", "png"},
		{"DottedDirectory", "mypa.th/myFile.png", "mypa.th/myFile", "png"},
		{"AbsolutePath", "/mypath/mypath/myFile.png", "/mypath/mypath/myFile", "png"},
		{"DotFile", ".myDotFile.png", ".myDotFile", "png"},
		{"DotFileWithPath", "mypath/.myDotFile.png", "mypath/.myDotFile", "png"},
		{"DotFileAbsolute", "/mypath/mypath/.myDotFile.png", "/mypath/mypath/.myDotFile", "png"},
		{"DotsInTheMiddle", "myFile.blahblah.myDotFile.png", "myFile.blahblah.myDotFile", "png"},
		{"DotFileDotsInTheMiddle", ".myFile.blahblah.myDotFile.png", ".myFile.blahblah.myDotFile", "png"},
		{"DotFileDotsInTheMiddleWithPath", "mypath/.myFile.myDotFile.png", "mypath/.myFile.myDotFile", "png"},
		{"DotFileWithoutExtension", ".myDotFileWithoutExtension", ".myDotFileWithoutExtension", ""},
		{"DotFileWithoutExtensionWithPath", "/mypath/mypath/.myDotFileWithoutExtension", "/mypath/mypath/.myDotFileWithoutExtension", ""},
		{"NoExtension", "myFileWithoutExtension", "myFileWithoutExtension", ""},
		{"NoExtensionWithPath", "mypath/mypath/myFileWithoutExtension", "mypath/mypath/myFileWithoutExtension", ""},
		{"UpperCaseExtension", "DSC_4180.JPG", "DSC_4180", "JPG"},
		{"Generated", "2015-10-18_145029utc_tz+0200_DSC_4180.JPG", "2015-10-18_145029utc_tz+0200_DSC_4180", "JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Split(tt.input)
			if !ok {
				t.Fatalf("Split(%q) rejected, want root %q", tt.input, tt.wantRoot)
			}
			if got.Root != tt.wantRoot {
				t.Errorf("Split(%q).Root = %q; want %q", tt.input, got.Root, tt.wantRoot)
			}
			if got.Ext != tt.wantExt {
				t.Errorf("Split(%q).Ext = %q; want %q", tt.input, got.Ext, tt.wantExt)
			}
		})
	}
}

func TestSplit_Rejects(t *testing.T) {
	inputs := []string{
		"..myDotFile.png",
		"mypath/..myDotFile.png",
		"mypath/..myDo..tFile.png",
		"myDotFile.png..",
		"mypath/myDotFile.png..",
		"..png",
		"mypath/..png",
		"myFile.",
		".",
		"..",
		"",
		"mypath/",
		"my..File.png",
	}
	for _, in := range inputs {
		if c, ok := Split(in); ok {
			t.Errorf("Split(%q) = %+v; want rejection", in, c)
		}
		if _, ok := Root(in); ok {
			t.Errorf("Root(%q) accepted; want rejection", in)
		}
		if _, ok := Extension(in); ok {
			t.Errorf("Extension(%q) accepted; want rejection", in)
		}
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	roots := []string{"a", "IMG_0001", ".hidden", "my.dotted.name", "2015-10-18_145029utc_tz+0200_DSC_4180"}
	exts := []string{"jpg", "NEF", "xmp", "Mov"}
	for _, root := range roots {
		for _, ext := range exts {
			name := root + "." + ext
			got, ok := Split(name)
			if !ok {
				t.Errorf("Split(%q) rejected", name)
				continue
			}
			if got.Root != root || got.Ext != ext {
				t.Errorf("Split(%q) = {%q, %q}; want {%q, %q}", name, got.Root, got.Ext, root, ext)
			}
			if got.Join() != name {
				t.Errorf("Join() = %q; want %q", got.Join(), name)
			}
		}
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"myFile.png", "png", true},
		{".myFile.png", "png", true},
		{"myFile", "", false},
		{".myFile", "", false},
		{"blahblah.myFile.png", "png", true},
		{"/mypath/mypath/.blahblah.myFile.png", "png", true},
		{"mypath/mypa.th/myFile.png", "png", true},
		{"/mypath/mypa.th/myFile", "", false},
	}
	for _, c := range cases {
		got, ok := Extension(c.path)
		if got != c.want || ok != c.wantOK {
			t.Errorf("Extension(%q) = (%q, %v); want (%q, %v)", c.path, got, ok, c.want, c.wantOK)
		}
	}
}

func TestBaseRoot(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/photos/2015/a.jpg", "a"},
		{"/photos/2015/.a.b.xmp", ".a.b"},
		{"a.NEF", "a"},
		{"/photos/a", "a"},
	}
	for _, c := range cases {
		got, ok := BaseRoot(c.path)
		if !ok || got != c.want {
			t.Errorf("BaseRoot(%q) = (%q, %v); want %q", c.path, got, ok, c.want)
		}
	}
	if _, ok := BaseRoot("/photos/..a.jpg"); ok {
		t.Error("BaseRoot should reject a leading double dot")
	}
}
