package builtin

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/warp"
)

type warpCommand struct {
	srv serverAdapter
}

func newWarpCommand(srv serverAdapter) cmd.Command {
	return cmd.New("warp", "Teleports you to a warp.", "<name>", nil, warpCommand{srv: srv})
}

func (c warpCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	if len(args) == 0 {
		listWarps(c.srv, "", o)
		return
	}
	e, ok := entityFrom(src, o)
	if !ok {
		return
	}
	if _, err := c.srv.Teleporter().Warp(e, args[0]); err != nil {
		if errors.Is(err, warp.ErrUnknownWarp) {
			o.Errorf("Warp %q does not exist.", args[0])
			return
		}
		o.Error(teleportError(err))
		return
	}
	wp, _ := c.srv.Warps().Get(args[0])
	if cost := c.srv.WarpConfig().Cost(wp); cost > 0 {
		o.Printf("Teleported to warp %v for %d.", wp.Name, cost)
	} else {
		o.Printf("Teleported to warp %v.", wp.Name)
	}
}

type setWarpCommand struct {
	srv serverAdapter
}

func newSetWarpCommand(srv serverAdapter) cmd.Command {
	return cmd.New("setwarp", "Creates a warp at your location.", "<name> [category]", nil, setWarpCommand{srv: srv})
}

func (c setWarpCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	if len(args) == 0 || len(args) > 2 {
		o.Errorf(cmd.MessageUsage, "/setwarp <name> [category]")
		return
	}
	e, ok := entityFrom(src, o)
	if !ok {
		return
	}
	loc := e.Location()
	if loc.World == nil {
		loc.World = c.srv.World()
	}
	wp := warp.Warp{World: loc.World.Name(), Position: loc.Position, Rotation: loc.Rotation, Cost: -1}
	if len(args) == 2 {
		wp.Category = args[1]
	}
	existed := c.srv.Warps().Exists(args[0])
	if err := c.srv.Warps().Set(args[0], wp); err != nil {
		if errors.Is(err, warp.ErrInvalidWarpName) {
			o.Errorf("%q is not a valid warp name.", args[0])
			return
		}
		o.Error(err)
		return
	}
	if existed {
		o.Printf("Moved warp %v to %v.", args[0], formatVec3(loc.Position))
		return
	}
	o.Printf("Created warp %v at %v.", args[0], formatVec3(loc.Position))
}

type deleteWarpCommand struct {
	srv serverAdapter
}

func newDeleteWarpCommand(srv serverAdapter) cmd.Command {
	return cmd.New("delwarp", "Removes a warp.", "<name>", []string{"removewarp"}, deleteWarpCommand{srv: srv})
}

func (c deleteWarpCommand) Run(_ cmd.Source, args []string, o *cmd.Output) {
	if len(args) != 1 {
		o.Errorf(cmd.MessageUsage, "/delwarp <name>")
		return
	}
	removed, err := c.srv.Warps().Remove(args[0])
	if err != nil {
		o.Error(err)
		return
	}
	if !removed {
		o.Errorf("Warp %q does not exist.", args[0])
		return
	}
	o.Printf("Removed warp %v.", args[0])
}

type warpsCommand struct {
	srv serverAdapter
}

func newWarpsCommand(srv serverAdapter) cmd.Command {
	return cmd.New("warps", "Lists all warps, grouped by category.", "[category]", nil, warpsCommand{srv: srv})
}

func (c warpsCommand) Run(_ cmd.Source, args []string, o *cmd.Output) {
	category := ""
	if len(args) != 0 {
		category = strings.Join(args, " ")
	}
	listWarps(c.srv, category, o)
}

type warpCostCommand struct {
	srv serverAdapter
}

func newWarpCostCommand(srv serverAdapter) cmd.Command {
	return cmd.New("warpcost", "Sets or resets the cost of a warp.", "<name> [cost]", nil, warpCostCommand{srv: srv})
}

func (c warpCostCommand) Run(_ cmd.Source, args []string, o *cmd.Output) {
	if len(args) == 0 || len(args) > 2 {
		o.Errorf(cmd.MessageUsage, "/warpcost <name> [cost]")
		return
	}
	var err error
	if len(args) == 1 {
		err = c.srv.Warps().RemoveCost(args[0])
	} else {
		var costs []int
		if costs, err = parseInts(args[1:]); err == nil {
			if costs[0] < 0 {
				o.Error("The cost of a warp cannot be negative.")
				return
			}
			err = c.srv.Warps().SetCost(args[0], costs[0])
		}
	}
	if err != nil {
		if errors.Is(err, warp.ErrUnknownWarp) {
			o.Errorf("Warp %q does not exist.", args[0])
			return
		}
		o.Error(err)
		return
	}
	wp, _ := c.srv.Warps().Get(args[0])
	o.Printf("The cost of warp %v is now %d.", wp.Name, c.srv.WarpConfig().Cost(wp))
}

// listWarps prints all warps in the category passed, or all warps grouped by
// category if category is empty.
func listWarps(srv serverAdapter, category string, o *cmd.Output) {
	store, conf := srv.Warps(), srv.WarpConfig()
	if category != "" {
		warps := store.Category(category)
		if strings.EqualFold(category, conf.CategoryName(warp.Warp{})) {
			warps = append(warps, store.Uncategorised()...)
		}
		if len(warps) == 0 {
			o.Errorf("No warps in category %q.", category)
			return
		}
		o.Printf("%v: %v", category, warpNames(warps))
		return
	}

	if len(store.Names()) == 0 {
		o.Print("There are no warps.")
		return
	}
	categories := store.Categorised()
	for _, name := range slices.Sorted(maps.Keys(categories)) {
		o.Printf("%v: %v", name, warpNames(categories[name]))
	}
	if uncategorised := store.Uncategorised(); len(uncategorised) != 0 {
		o.Printf("%v: %v", conf.CategoryName(warp.Warp{}), warpNames(uncategorised))
	}
}

func warpNames(warps []warp.Warp) string {
	names := make([]string, len(warps))
	for i, w := range warps {
		names[i] = w.Name
	}
	return strings.Join(names, ", ")
}
