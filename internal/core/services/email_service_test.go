package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEMessage_Structure(t *testing.T) {
	pdf := []byte("%PDF-1.3 payload")

	msg := string(buildMIMEMessage("PetroBook", "billing@petrobook.test", "client@example.com",
		"Invoice INV-1001", "<p>Please find attached.</p>", "invoice-INV-1001.pdf", pdf))

	assert.Contains(t, msg, "From: PetroBook <billing@petrobook.test>\r\n")
	assert.Contains(t, msg, "To: client@example.com\r\n")
	assert.Contains(t, msg, "Subject: Invoice INV-1001\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/mixed; boundary="+mimeBoundary)
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n")
	assert.Contains(t, msg, "<p>Please find attached.</p>")
	assert.Contains(t, msg, `Content-Disposition: attachment; filename="invoice-INV-1001.pdf"`)
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString(pdf))
}

func TestBuildMIMEMessage_WrapsBase64Lines(t *testing.T) {
	pdf := make([]byte, 600)
	for i := range pdf {
		pdf[i] = byte(i % 251)
	}

	msg := string(buildMIMEMessage("PetroBook", "billing@petrobook.test", "client@example.com",
		"Invoice", "<p>body</p>", "invoice.pdf", pdf))

	start := strings.Index(msg, "Content-Transfer-Encoding: base64\r\n")
	require.Greater(t, start, 0)
	for _, line := range strings.Split(msg[start:], "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}
