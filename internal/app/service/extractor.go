package service

import (
	"fmt"
	"regexp"
)

// drivePattern recognizes the share-link shapes Google Drive hands out.
// The file ID is the maximal [A-Za-z0-9_-] run following the matched prefix;
// trailing path segments and query parameters are ignored.
var drivePattern = regexp.MustCompile(`https?://(?:drive\.google\.com/(?:file/d/|open\?id=)|docs\.google\.com/document/d/)([A-Za-z0-9_-]+)`)

const directDownloadTemplate = "https://drive.google.com/uc?export=download&id=%s"

// ExtractFileID pulls the file identifier out of a Google Drive share link.
// A false result is a normal negative outcome, not an error: the input simply
// does not contain a recognized Drive URL.
func ExtractFileID(link string) (string, bool) {
	m := drivePattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DirectDownloadURL renders the direct-download link for an extracted file ID.
// File IDs are already constrained to URL-safe characters by the extraction
// character class, so no additional encoding is applied.
func DirectDownloadURL(fileID string) string {
	return fmt.Sprintf(directDownloadTemplate, fileID)
}
