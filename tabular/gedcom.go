package tabular

import (
	gedcom "github.com/elliotchance/gedcom/v39"

	"github.com/SaschaSchweitzer/persons/types"
)

// ReadGEDCOM reads the individuals of a GEDCOM file into a name table with
// the columns id, forename and surname. Individuals without a name record
// are skipped; the first name of an individual wins.
func ReadGEDCOM(path string) (*Table, error) {
	doc, err := gedcom.NewDocumentFromGEDCOMFile(path)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeIO, err, "gedcom input")
	}

	table := NewTable("id", "forename", "surname")
	for _, indi := range doc.Individuals() {
		names := indi.Names()
		if len(names) == 0 {
			continue
		}
		table.Append(Row{
			"id":       indi.Pointer(),
			"forename": names[0].GivenName(),
			"surname":  names[0].Surname(),
		})
	}
	return table, nil
}
