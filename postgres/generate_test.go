package postgres

import (
	"strings"
	"testing"

	"github.com/paraglidehq/shortcode"
)

func TestGenerateSQL(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		sql := generateSQL(shortcode.Config{}.Normalize())
		if !strings.Contains(sql, "'"+shortcode.Base62Alphabet+"'") {
			t.Error("generated SQL does not contain the base62 alphabet literal")
		}
		if !strings.Contains(sql, "base bigint := 62;") {
			t.Error("generated SQL does not declare base 62")
		}
		if !strings.Contains(sql, "strict_mode boolean := false;") {
			t.Error("generated SQL does not declare strict_mode")
		}
		if strings.Contains(sql, "%!") {
			t.Errorf("generated SQL has a formatting error:\n%s", sql)
		}
	})
	t.Run("Secondary", func(t *testing.T) {
		sql := generateSQL(shortcode.Config{UseSecondary: true, Offset: -7}.Normalize())
		if !strings.Contains(sql, "'"+shortcode.Shuffled62Alphabet+"'") {
			t.Error("generated SQL does not use the secondary alphabet")
		}
		if !strings.Contains(sql, "n := value + (-7);") {
			t.Error("generated SQL does not apply the offset")
		}
	})
	t.Run("Quoting", func(t *testing.T) {
		sql := generateSQL(shortcode.Config{Alphabet: "ab'c"}.Normalize())
		if !strings.Contains(sql, "'ab''c'") {
			t.Errorf("quote not escaped:\n%s", sql)
		}
		if !strings.Contains(sql, "base bigint := 4;") {
			t.Error("generated SQL does not declare base 4")
		}
	})
}
