package builtin

import (
	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/world"
)

type findCommand struct {
	srv serverAdapter
}

func newFindCommand(srv serverAdapter) cmd.Command {
	return cmd.New("find", "Searches for the nearest safe location around a position.", "<x> <y> <z> [height] [width]", []string{"safe"}, findCommand{srv: srv})
}

func (f findCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	target, err := parseVec3(src, args)
	if err != nil || len(args) > 5 {
		o.Errorf(cmd.MessageUsage, "/find <x> <y> <z> [height] [width]")
		return
	}
	l := f.srv.Locator()
	height, width := l.Radius()
	radii, err := parseInts(args[3:])
	if err != nil {
		o.Error(err)
		return
	}
	if len(radii) > 0 {
		height = radii[0]
	}
	if len(radii) > 1 {
		width = radii[1]
	}

	w := worldOf(f.srv, src)
	res := l.Search(w, target, height, width)
	if res.TooLarge {
		o.Errorf("Search area too large: %d positions around %v, at most %d may be searched.", res.Stats.Candidates, formatPos(cube.PosFromVec3(target)), l.MaxVolume())
		return
	}
	if !res.Found {
		o.Errorf("No safe location found within %d blocks vertically and %d blocks horizontally of %v.", height, width, formatPos(cube.PosFromVec3(target)))
		return
	}
	o.Printf("Safe location found at %v in %v.", formatVec3(res.Position), w.Name())
	o.Printf("Examined %d of %d candidates with %d block reads.", res.Stats.Examined, res.Stats.Candidates, res.Stats.Queries)
}

type setBlockCommand struct {
	srv serverAdapter
}

func newSetBlockCommand(srv serverAdapter) cmd.Command {
	return cmd.New("setblock", "Changes a block to another block.", "<x> <y> <z> <block>", nil, setBlockCommand{srv: srv})
}

func (s setBlockCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	v, err := parseVec3(src, args)
	if err != nil || len(args) != 4 {
		o.Errorf(cmd.MessageUsage, "/setblock <x> <y> <z> <block>")
		return
	}
	b, ok := world.BlockByName(args[3], nil)
	if !ok {
		o.Errorf("Unknown block %q.", args[3])
		return
	}
	w := worldOf(s.srv, src)
	pos := cube.PosFromVec3(v)
	if pos.OutOfBounds(w.Range()) {
		o.Errorf("Cannot place a block outside of the world at %v.", formatPos(pos))
		return
	}
	w.SetBlock(pos, b)
	name, _ := b.EncodeBlock()
	o.Printf("Changed the block at %v to %v.", formatPos(pos), name)
}
