package pool

import "testing"

func TestPathBuilderRendering(t *testing.T) {
	tests := []struct {
		name  string
		build func(*PathBuilder)
		want  string
	}{
		{
			"fields",
			func(b *PathBuilder) { b.WriteField("a"); b.WriteField("b") },
			"a.b",
		},
		{
			"leading index",
			func(b *PathBuilder) { b.WriteIndex(0); b.WriteField("x") },
			"[0].x",
		},
		{
			"field then index",
			func(b *PathBuilder) { b.WriteField("users"); b.WriteIndex(3); b.WriteField("name") },
			"users[3].name",
		},
		{
			"call",
			func(b *PathBuilder) { b.WriteField("db"); b.WriteCall("load") },
			"db.load()",
		},
		{
			"leading call",
			func(b *PathBuilder) { b.WriteCall("root") },
			"root()",
		},
		{
			"empty",
			func(b *PathBuilder) {},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := AcquirePathBuilder()
			defer b.Release()
			tt.build(b)
			if got := b.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathBuilderReuse(t *testing.T) {
	b := AcquirePathBuilder()
	b.WriteField("stale")
	b.Release()

	b2 := AcquirePathBuilder()
	defer b2.Release()
	if b2.Len() != 0 {
		t.Errorf("pooled builder not reset: %q", b2.String())
	}
}

func TestPathBuilderStringSurvivesRelease(t *testing.T) {
	b := AcquirePathBuilder()
	b.WriteField("x")
	b.WriteIndex(1)
	s := b.String()
	b.Release()

	other := AcquirePathBuilder()
	other.WriteField("overwrite")
	defer other.Release()

	if s != "x[1]" {
		t.Errorf("rendered path changed after release: %q", s)
	}
}

func TestPathBuilderNilRelease(t *testing.T) {
	var b *PathBuilder
	b.Release() // must not panic
}
