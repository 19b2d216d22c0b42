package editops

import (
	"fmt"
	"regexp"

	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/hardware"
	"github.com/threatflux/cot/internal/platform"
	"github.com/threatflux/cot/internal/resources"
)

// HardwareEdit describes one edit-hardware invocation. Nil pointers and
// nil/empty slices mean "leave unchanged"; Profile empty means "apply
// to the whole profile universe" (a named profile gets the same
// semantics, scoped to that profile's shards).
type HardwareEdit struct {
	Profile        string
	CPUs           *int
	MemoryMB       *int
	NICs           *int
	NICNetworks    []string
	SerialPorts    *int
}

// EditHardware applies a HardwareEdit to the context's in-memory
// hardware model, validating the resulting configuration against the
// descriptor's product-class platform bounds. Bound violations are
// surfaced through the session's confirmation callback rather than
// failing outright.
func (c *Context) EditHardware(e HardwareEdit) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("edit-hardware", err == nil) }()

	target := c.Hardware.Universe
	if e.Profile != "" {
		target = hardware.NewProfileSet(e.Profile)
	}

	if e.CPUs != nil {
		if err := c.Hardware.SetCPUCount(target, *e.CPUs); err != nil {
			return err
		}
	}
	if e.MemoryMB != nil {
		if err := c.Hardware.SetMemoryMB(target, *e.MemoryMB); err != nil {
			return err
		}
	}
	if e.NICs != nil {
		nextName := c.nextNetworkName()
		if _, err := c.Hardware.SetNICCount(*e.NICs, c.nicResourceSubType(), func(addedIndex int) string {
			name := nextName(addedIndex)
			if _, ok := c.Networks.Get(name); !ok {
				_ = c.Networks.Add(resources.Network{Name: name})
			}
			return name
		}); err != nil {
			return err
		}
	}
	if len(e.NICNetworks) > 0 {
		used := c.Hardware.SetNICNetworks(e.NICNetworks)
		usedSet := make(map[string]struct{}, len(used))
		for _, name := range used {
			usedSet[name] = struct{}{}
			if _, ok := c.Networks.Get(name); !ok {
				if err := c.Networks.Add(resources.Network{Name: name}); err != nil {
					return err
				}
			}
		}
		// A Network referenced by no NIC after this reassignment is
		// unused and is dropped.
		for _, n := range c.Networks.List() {
			if _, ok := usedSet[n.Name]; !ok {
				_ = c.Networks.Remove(n.Name)
			}
		}
	}
	if e.SerialPorts != nil {
		if _, err := c.Hardware.SetSerialCount(*e.SerialPorts); err != nil {
			return err
		}
	}

	if err := c.Hardware.ValidateReferences(func(name string) bool {
		_, ok := c.Networks.Get(name)
		return ok
	}); err != nil {
		return err
	}

	return c.validatePlatformBounds()
}

func (c *Context) nicResourceSubType() string {
	return platform.Lookup(c.Product.ProductClass).DefaultNICResourceSubType()
}

// trailingSequenceRE splits a network name into a non-numeric prefix
// and a trailing integer, e.g. "GigabitEthernet2" -> ("GigabitEthernet", 2).
var trailingSequenceRE = regexp.MustCompile(`^(.*?)(\d+)$`)

// nextNetworkName inspects the context's current Network names and
// returns a generator for the network a newly added NIC should
// reference, keyed by a 0-based index counting only the NICs this edit
// adds. When every existing name that ends in an integer shares the
// same non-numeric prefix (e.g. GigabitEthernet1, GigabitEthernet2,
// ...), new NICs extend that sequence from one past the highest
// existing number — a fresh Network is materialized for each. When no
// such sequence is discernible (no existing Networks, or existing names
// don't share a prefix), every new NIC falls back to a single default:
// the first existing Network's name, or "VM Network" if there are none.
func (c *Context) nextNetworkName() func(addedIndex int) string {
	nets := c.Networks.List()

	prefix := ""
	maxN := 0
	matched := 0
	for _, n := range nets {
		m := trailingSequenceRE.FindStringSubmatch(n.Name)
		if m == nil {
			continue
		}
		if matched == 0 {
			prefix = m[1]
		} else if m[1] != prefix {
			matched = -1
			break
		}
		matched++
		if v := atoiZero(m[2]); v > maxN {
			maxN = v
		}
	}

	if matched <= 0 {
		def := "VM Network"
		if len(nets) > 0 {
			def = nets[0].Name
		}
		return func(int) string { return def }
	}

	return func(addedIndex int) string {
		return fmt.Sprintf("%s%d", prefix, maxN+addedIndex+1)
	}
}

func (c *Context) validatePlatformBounds() error {
	p := platform.Lookup(c.Product.ProductClass)

	profile, _ := c.Hardware.Universe.Any()
	req := platform.Request{}
	if cpu := c.soleValue(hardware.ResourceTypeCPU, "VirtualQuantity", profile); cpu != "" {
		req.CPUs = atoiZero(cpu)
	}
	if mem := c.soleValue(hardware.ResourceTypeMemory, "VirtualQuantity", profile); mem != "" {
		req.RAMMB = atoiZero(mem)
	}
	req.NICs = len(c.Hardware.ByResourceType(hardware.ResourceTypeEthernetAdapter))
	req.Serial = len(c.Hardware.ByResourceType(hardware.ResourceTypeSerialPort))

	if ok, warning := p.Validate(req); !ok {
		if !c.Session.Confirm(warning) {
			return errors.WrapWithKind(errors.ErrCancelled, errors.KindCancelled, "hardware edit cancelled: %s", warning)
		}
	}
	return nil
}

func (c *Context) soleValue(rt hardware.ResourceType, attr, profile string) string {
	items := c.Hardware.ByResourceType(rt)
	if len(items) == 0 {
		return ""
	}
	v, _ := items[0].Get(attr, profile)
	return v
}

func atoiZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
