package hardware

import "fmt"

// DependencyFunc recomputes a derived attribute's value for one profile
// from the rest of a LogicalItem's state. Registered dependencies are
// re-materialized whenever the attribute they read from changes:
// attribute values that reference other items are detected via a
// registered dependency map and re-materialized when the referenced
// attribute changes.
type DependencyFunc func(li *LogicalItem, profile string) (string, bool)

// dependencies maps a derived attribute name to the function that
// recomputes it, and the attribute name it depends on.
type dependency struct {
	dependsOn string
	recompute DependencyFunc
}

var dependencyRegistry = map[string]dependency{
	"ElementName": {
		dependsOn: "Connection",
		recompute: func(li *LogicalItem, profile string) (string, bool) {
			if li.ResourceType != ResourceTypeEthernetAdapter {
				return "", false
			}
			conn, ok := li.Get("Connection", profile)
			if !ok {
				return "", false
			}
			return fmt.Sprintf("Network adapter (%s)", conn), true
		},
	},
}

// RematerializeDependents recomputes every registered derived attribute
// that depends on changedAttr, for every profile in target, on li.
func RematerializeDependents(li *LogicalItem, changedAttr string, target ProfileSet) {
	for attrName, dep := range dependencyRegistry {
		if dep.dependsOn != changedAttr {
			continue
		}
		for _, profile := range target.Sorted() {
			if value, ok := dep.recompute(li, profile); ok {
				li.Set(attrName, NewProfileSet(profile), value)
			}
		}
	}
}
