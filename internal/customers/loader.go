package customers

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ubermelon/shop/internal/domain"
)

// fieldsPerLine is the layout of the credential file:
// firstname|lastname|email|password
const fieldsPerLine = 4

// LoadFile reads the pipe-delimited credential file and builds a Store.
// Blank lines are skipped; a line with the wrong field count aborts the
// load with its line number.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("customers: open %s: %w", path, err)
	}
	defer f.Close()

	var records []domain.Customer
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != fieldsPerLine {
			return nil, fmt.Errorf("customers: %s:%d: expected %d pipe-delimited fields, got %d", path, lineNo, fieldsPerLine, len(parts))
		}
		email := strings.TrimSpace(parts[2])
		if email == "" {
			return nil, fmt.Errorf("customers: %s:%d: email is required", path, lineNo)
		}
		records = append(records, domain.Customer{
			FirstName: strings.TrimSpace(parts[0]),
			LastName:  strings.TrimSpace(parts[1]),
			Email:     email,
			Password:  parts[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("customers: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("customers: %s contains no customers", path)
	}

	return NewStore(records), nil
}
