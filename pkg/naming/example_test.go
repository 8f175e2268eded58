package naming_test

import (
	"fmt"

	"github.com/walteh/formedit/pkg/naming"
	"github.com/walteh/formedit/pkg/sheet"
	"github.com/walteh/formedit/pkg/text"
)

func ExampleGenerate() {
	record := sheet.RecordOf([]string{"id", "title"}, []string{"12", "Harbor at Dusk (final)"})

	name, err := naming.Generate(record, "${id}_${title}_$camera", map[string]text.Instructions{
		"id":    {},
		"title": text.MustInstructions(text.Truncate{Marker: " ("}, text.Replace{From: " ", To: "-"}),
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(name)

	// Output:
	// 12_Harbor-at-Dusk_$camera
}
