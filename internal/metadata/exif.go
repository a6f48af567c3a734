// Package metadata builds the EXIF block embedded into every output of a run.
package metadata

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	exifHeader = "Exif\x00\x00"

	// APP1 payload limit: segment length field minus its own two bytes.
	maxPayload = 0xFFFF - 2

	exifDateTimeLayout = "2006:01:02 15:04:05"
	titleDateLayout    = "2006-01-02"

	exifIfdPath = "IFD/Exif"
)

// IFD0 and Exif IFD tags.
const (
	TagImageDescription  uint16 = 0x010E
	TagSoftware          uint16 = 0x0131
	TagDateTime          uint16 = 0x0132
	TagArtist            uint16 = 0x013B
	TagCopyright         uint16 = 0x8298
	TagExifIFDPointer    uint16 = 0x8769
	TagXPTitle           uint16 = 0x9C9B
	TagXPAuthor          uint16 = 0x9C9D
	TagXPKeywords        uint16 = 0x9C9E
	TagXPSubject         uint16 = 0x9C9F
	TagDateTimeOriginal  uint16 = 0x9003
	TagDateTimeDigitized uint16 = 0x9004
)

var ErrMetadataTooLarge = errors.New("metadata segment too large")

// Fields are the descriptive values taken from configuration.
type Fields struct {
	Author    string
	Copyright string
	Software  string
	Title     string
	Subject   string
	Keywords  string
}

// Record is the normalized metadata of one run.
type Record struct {
	Fields
	TitleWithDate string
	Timestamp     string
}

// NewRecord normalizes fields for a run started at now: keywords are
// separated by ";" and the title gets the run date appended.
func NewRecord(f Fields, now time.Time) Record {
	f.Keywords = strings.ReplaceAll(f.Keywords, ",", ";")
	return Record{
		Fields:        f,
		TitleWithDate: strings.TrimSpace(f.Title + " " + now.Format(titleDateLayout)),
		Timestamp:     now.Format(exifDateTimeLayout),
	}
}

// Description is the ImageDescription text: the title, or the subject when
// no title is configured.
func (r Record) Description() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Subject
}

// Build assembles IFD0 and the Exif sub-IFD for the record. Tags are added in
// ascending order. ASCII-typed tags are folded to ASCII; the XP* tags keep
// the full text as UTF-16LE and are left out when empty.
func Build(r Record) (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("failed to create ifd mapping: %w", err)
	}

	ib := exif.NewIfdBuilder(im, exif.NewTagIndex(), exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	ascii := []struct {
		name  string
		value string
	}{
		{"ImageDescription", r.Description()},
		{"Software", r.Software},
		{"DateTime", r.Timestamp},
		{"Artist", r.Author},
		{"Copyright", r.Copyright},
	}
	for _, t := range ascii {
		if err := ib.AddStandardWithName(t.name, ToASCII(t.value)); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", t.name, err)
		}
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(ib, exifIfdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create exif ifd: %w", err)
	}
	for _, name := range []string{"DateTimeOriginal", "DateTimeDigitized"} {
		if err := exifIb.AddStandardWithName(name, r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", name, err)
		}
	}

	xp := []struct {
		name  string
		value string
	}{
		{"XPTitle", r.TitleWithDate},
		{"XPAuthor", r.Author},
		{"XPKeywords", r.Keywords},
		{"XPSubject", r.Subject},
	}
	for _, t := range xp {
		if t.value == "" {
			continue
		}
		data, err := textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM).NewEncoder().Bytes([]byte(t.value))
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s as utf-16: %w", t.name, err)
		}
		if err := ib.AddStandardWithName(t.name, data); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", t.name, err)
		}
	}

	blob, err := Encode(ib)
	if err != nil {
		return nil, err
	}
	if len(blob) > maxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrMetadataTooLarge, len(blob))
	}

	return ib, nil
}

// Encode returns the APP1 payload for ib: the "Exif\0\0" identifier followed
// by the TIFF structure.
func Encode(ib *exif.IfdBuilder) ([]byte, error) {
	tiff, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	if err != nil {
		return nil, fmt.Errorf("failed to encode exif: %w", err)
	}
	return append([]byte(exifHeader), tiff...), nil
}

// ToASCII strips diacritics and replaces whatever is still outside ASCII
// with '?'.
func ToASCII(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(replaceNonASCII))

	out, _, err := transform.String(fold, s)
	if err != nil {
		return strings.Map(replaceNonASCII, s)
	}
	return out
}

func replaceNonASCII(r rune) rune {
	if r > unicode.MaxASCII {
		return '?'
	}
	return r
}
