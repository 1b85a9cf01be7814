// Package postgres installs SQL functions that mirror a shortcode.Codec,
// so codes can be produced and resolved inside queries:
//
//	SELECT shortcode_encode(id) FROM links;
//	SELECT * FROM links WHERE id = shortcode_decode($1);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/paraglidehq/shortcode"
)

var ErrConfigMismatch = errors.New("shortcode: database config does not match application config")

// Migrate runs the idempotent shortcode migration with the given configuration.
// If the database already has a different configuration, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg shortcode.Config) error {
	// Reject bad alphabets before touching the database.
	if _, err := shortcode.New(cfg); err != nil {
		return err
	}
	cfg = cfg.Normalize()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _shortcode_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			alphabet text NOT NULL,
			secondary_alphabet text NOT NULL,
			use_secondary boolean NOT NULL,
			"offset" bigint NOT NULL,
			strict boolean NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("shortcode: create config table: %w", err)
	}

	stored, err := GetConfig(ctx, db)
	switch {
	case err == nil:
		if stored != cfg {
			return fmt.Errorf("%w: db has %s, app has %s", ErrConfigMismatch, describe(stored), describe(cfg))
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `
			INSERT INTO _shortcode_config (alphabet, secondary_alphabet, use_secondary, "offset", strict)
			VALUES ($1, $2, $3, $4, $5)`,
			cfg.Alphabet, cfg.SecondaryAlphabet, cfg.UseSecondary, cfg.Offset, cfg.Strict)
		if err != nil {
			return fmt.Errorf("shortcode: insert config: %w", err)
		}
	default:
		return fmt.Errorf("shortcode: read config: %w", err)
	}

	if _, err := db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return fmt.Errorf("shortcode: run migrations: %w", err)
	}
	return nil
}

// GetConfig reads the shortcode configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (shortcode.Config, error) {
	var cfg shortcode.Config
	err := db.QueryRowContext(ctx, `
		SELECT alphabet, secondary_alphabet, use_secondary, "offset", strict
		FROM _shortcode_config`).
		Scan(&cfg.Alphabet, &cfg.SecondaryAlphabet, &cfg.UseSecondary, &cfg.Offset, &cfg.Strict)
	return cfg, err
}

// Codec returns a Codec built from the configuration stored in the database.
func Codec(ctx context.Context, db *sql.DB) (*shortcode.Codec, error) {
	cfg, err := GetConfig(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("shortcode: read config: %w", err)
	}
	return shortcode.New(cfg)
}

// Encode calls shortcode_encode in the database.
func Encode(ctx context.Context, db *sql.DB, value int64) (string, error) {
	var s string
	err := db.QueryRowContext(ctx, "SELECT shortcode_encode($1)", value).Scan(&s)
	return s, err
}

// Decode calls shortcode_decode in the database.
func Decode(ctx context.Context, db *sql.DB, code string) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx, "SELECT shortcode_decode($1)", code).Scan(&n)
	return n, err
}

func describe(cfg shortcode.Config) string {
	return fmt.Sprintf("alphabet=%q secondary_alphabet=%q use_secondary=%t offset=%d strict=%t",
		cfg.Alphabet, cfg.SecondaryAlphabet, cfg.UseSecondary, cfg.Offset, cfg.Strict)
}

// generateSQL renders the functions for the active alphabet of cfg.
// Alphabets hold distinct symbols, so a quoted alphabet never contains $$.
func generateSQL(cfg shortcode.Config) string {
	alphabet := cfg.ActiveAlphabet()
	base := len([]rune(alphabet))
	lit := pq.QuoteLiteral(alphabet)

	return fmt.Sprintf(`
-- Encode a non-negative bigint as a short code
CREATE OR REPLACE FUNCTION shortcode_encode(value bigint)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := %[1]s;
  base bigint := %[2]d;
  n bigint;
  result text := '';
BEGIN
  IF value < 0 THEN
    RAISE EXCEPTION 'shortcode: cannot encode %% with offset %%', value, %[3]d
      USING ERRCODE = '22023';
  END IF;
  n := value + (%[3]d);
  IF n < 0 THEN
    RAISE EXCEPTION 'shortcode: cannot encode %% with offset %%', value, %[3]d
      USING ERRCODE = '22023';
  END IF;
  IF n = 0 THEN
    RETURN substr(alphabet, 1, 1);
  END IF;
  WHILE n > 0 LOOP
    result := substr(alphabet, (n %% base)::int + 1, 1) || result;
    n := n / base;
  END LOOP;
  RETURN result;
END;
$$;

-- Decode a short code back to its bigint
CREATE OR REPLACE FUNCTION shortcode_decode(code text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := %[1]s;
  base bigint := %[2]d;
  strict_mode boolean := %[4]t;
  c text;
  p int;
  result bigint := 0;
BEGIN
  IF char_length(code) = 0 THEN
    RAISE EXCEPTION 'shortcode: empty string' USING ERRCODE = '22023';
  END IF;
  FOR i IN 1..char_length(code) LOOP
    c := substr(code, i, 1);
    p := strpos(alphabet, c);
    IF p = 0 THEN
      RAISE EXCEPTION 'shortcode: invalid character %% at position %% in %%', quote_literal(c), i - 1, quote_literal(code)
        USING ERRCODE = '22023';
    END IF;
    IF strict_mode AND i = 1 AND p = 1 AND char_length(code) > 1 THEN
      RAISE EXCEPTION 'shortcode: non-canonical code %%', quote_literal(code)
        USING ERRCODE = '22023';
    END IF;
    result := result * base + (p - 1);
  END LOOP;
  result := result - (%[3]d);
  IF result < 0 THEN
    RAISE EXCEPTION 'shortcode: %% decodes below zero with offset %%', quote_literal(code), %[3]d
      USING ERRCODE = '22023';
  END IF;
  RETURN result;
END;
$$;

-- Constants
CREATE OR REPLACE FUNCTION shortcode_alphabet() RETURNS text LANGUAGE sql IMMUTABLE AS $$ SELECT %[1]s::text; $$;
CREATE OR REPLACE FUNCTION shortcode_offset() RETURNS bigint LANGUAGE sql IMMUTABLE AS $$ SELECT (%[3]d)::bigint; $$;
`,
		lit,        // alphabet literal
		base,       // symbol count
		cfg.Offset, // offset
		cfg.Strict, // strict decoding
	)
}
