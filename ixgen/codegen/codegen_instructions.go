// Copyright (c) 2025 DASMAC <dev@dasmac.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package codegen

import (
	"fmt"
	"sort"

	"github.com/DASMAC-com/dropset-v1/ixgen"
)

// tagRange is a run of assigned discriminant values.
type tagRange struct {
	lo, hi uint8
}

// tagRanges groups the assigned discriminants of the set into
// contiguous runs, in ascending order.
func tagRanges(set *ixgen.InstructionSet) []tagRange {
	tags := make([]uint8, 0, len(set.Instructions))
	for _, ix := range set.Instructions {
		tags = append(tags, ix.Tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var ranges []tagRange
	for _, tag := range tags {
		if n := len(ranges); n > 0 && ranges[n-1].hi+1 == tag {
			ranges[n-1].hi = tag
			continue
		}
		ranges = append(ranges, tagRange{lo: tag, hi: tag})
	}
	return ranges
}

func (g *generator) genInstructions() {
	imports := []string{"fmt"}
	if g.needsBinary() {
		imports = append([]string{"encoding/binary"}, imports...)
	}
	imports = append(imports, "", g.opts.RuntimeImport)
	g.header(imports...)

	g.p("")
	g.p("// ProgramID is the on-chain address of the %s program.", g.set.Name)
	g.p("var ProgramID = %s.MustAddressFromBase58(%q)", g.rt, g.set.ProgramIDBase58)

	g.genTagEnum()
	for _, ix := range g.set.Instructions {
		g.genData(ix)
	}
}

func (g *generator) needsBinary() bool {
	for _, ix := range g.set.Instructions {
		for _, arg := range ix.Args {
			switch arg.Type.Kind {
			case ixgen.KindU16, ixgen.KindU32, ixgen.KindU64:
				return true
			}
		}
	}
	return false
}

func (g *generator) genTagEnum() {
	g.p("")
	g.p("// InstructionTag identifies a %s instruction. It is the first", g.set.Name)
	g.p("// byte of the packed instruction data.")
	g.p("type InstructionTag uint8")
	g.p("")
	g.p("const (")
	for i, ix := range g.set.Instructions {
		if i > 0 {
			g.p("")
		}
		g.p("\t// Tag%s is the discriminant of the %s instruction.", ix.Name, ix.Name)
		g.p("\tTag%s InstructionTag = %d", ix.Name, ix.Tag)
	}
	g.p(")")

	g.p("")
	g.p("func (t InstructionTag) String() string {")
	g.p("\tswitch t {")
	for _, ix := range g.set.Instructions {
		g.p("\tcase Tag%s:", ix.Name)
		g.p("\t\treturn %q", ix.Name)
	}
	g.p("\tdefault:")
	g.p("\t\treturn fmt.Sprintf(\"InstructionTag(%%d)\", uint8(t))")
	g.p("\t}")
	g.p("}")

	errExpr := g.rt + ".ErrInvalidInstructionTag"
	if g.set.ErrorName != "" {
		errExpr = g.set.ErrorName
	}
	g.p("")
	g.p("// InstructionTagFromUint8 converts a discriminant byte into an")
	g.p("// InstructionTag, rejecting bytes that name no instruction.")
	g.p("func InstructionTagFromUint8(v uint8) (InstructionTag, error) {")
	g.p("\tswitch {")
	for _, r := range tagRanges(g.set) {
		switch {
		case r.lo == r.hi:
			g.p("\tcase v == %d:", r.lo)
		case r.lo == 0:
			g.p("\tcase v <= %d:", r.hi)
		default:
			g.p("\tcase v >= %d && v <= %d:", r.lo, r.hi)
		}
	}
	g.p("\tdefault:")
	g.p("\t\treturn 0, %s", errExpr)
	g.p("\t}")
	g.p("\treturn InstructionTag(v), nil")
	g.p("}")
}

func (g *generator) genData(ix *ixgen.Instruction) {
	layout := ix.Layout()
	dataType := ix.Name + "InstructionData"
	sizeConst := dataType + "Size"

	g.p("")
	g.p("// %s is the serialized payload of a %s", dataType, ix.Name)
	g.p("// instruction.")
	if ix.Doc != "" {
		g.p("//")
		g.p("// %s", ix.Doc)
	}
	g.p("//")
	g.p("// Wire layout:")
	g.p("//")
	g.p("//\t[0] discriminant (Tag%s)", ix.Name)
	for i, arg := range ix.Args {
		off := layout.ArgOffsets[i]
		span := fmt.Sprintf("[%d:%d]", off, off+arg.Type.Size())
		line := fmt.Sprintf("%s %s (%s)", span, arg.Name, arg.Type)
		if arg.Desc != "" {
			line += ": " + arg.Desc
		}
		g.p("//\t%s", line)
	}
	if len(ix.Args) == 0 {
		g.p("type %s struct{}", dataType)
	} else {
		g.p("type %s struct {", dataType)
		names := make([]string, len(ix.Args))
		types := make([]string, len(ix.Args))
		for i, arg := range ix.Args {
			names[i] = ixgen.GoName(arg.Name)
			types[i] = g.goType(arg.Type)
		}
		g.fieldLines(names, types)
		g.p("}")
	}

	g.p("")
	g.p("// %s is the packed size of a %s", sizeConst, ix.Name)
	g.p("// instruction, including the discriminant byte.")
	g.p("const %s = %d", sizeConst, layout.TotalSize)
	g.p("")
	g.p("// The packed size must equal the discriminant byte plus the declared")
	g.p("// argument widths.")
	assertion := "1"
	for _, arg := range ix.Args {
		assertion += fmt.Sprintf(" + %d", arg.Type.Size())
	}
	g.p("var _ [%s]uint8 = [%s]uint8{}", sizeConst, assertion)

	g.genPack(ix, layout, dataType, sizeConst)
	g.genUnpack(ix, layout, dataType, sizeConst)
}

func (g *generator) genPack(ix *ixgen.Instruction, layout ixgen.Layout, dataType, sizeConst string) {
	g.p("")
	g.p("// Pack serializes the discriminant and each argument at its fixed")
	g.p("// offset.")
	g.p("func (d %s) Pack() [%s]uint8 {", dataType, sizeConst)
	g.p("\tvar data [%s]uint8", sizeConst)
	g.p("\tdata[0] = uint8(Tag%s)", ix.Name)
	for i, arg := range ix.Args {
		field := "d." + ixgen.GoName(arg.Name)
		off := layout.ArgOffsets[i]
		end := off + arg.Type.Size()
		switch arg.Type.Kind {
		case ixgen.KindBool:
			g.p("\tif %s {", field)
			g.p("\t\tdata[%d] = 1", off)
			g.p("\t}")
		case ixgen.KindU8:
			g.p("\tdata[%d] = %s", off, field)
		case ixgen.KindU16:
			g.p("\tbinary.LittleEndian.PutUint16(data[%d:%d], %s)", off, end, field)
		case ixgen.KindU32:
			g.p("\tbinary.LittleEndian.PutUint32(data[%d:%d], %s)", off, end, field)
		case ixgen.KindU64:
			g.p("\tbinary.LittleEndian.PutUint64(data[%d:%d], %s)", off, end, field)
		case ixgen.KindU128:
			g.p("\t%s.PutUint128(data[%d:%d], %s)", g.rt, off, end, field)
		case ixgen.KindAddress, ixgen.KindBytes:
			g.p("\tcopy(data[%d:%d], %s[:])", off, end, field)
		}
	}
	g.p("\treturn data")
	g.p("}")
}

func (g *generator) genUnpack(ix *ixgen.Instruction, layout ixgen.Layout, dataType, sizeConst string) {
	g.p("")
	g.p("// Unpack%s deserializes the payload that follows", dataType)
	g.p("// the discriminant byte. Bytes past the declared layout are ignored.")
	g.p("func Unpack%s(data []uint8) (%s, error) {", dataType, dataType)
	if len(ix.Args) == 0 {
		g.p("\treturn %s{}, nil", dataType)
		g.p("}")
		return
	}
	g.p("\tif len(data) < %s-1 {", sizeConst)
	g.p("\t\treturn %s{}, %s.ErrInvalidInstructionData", dataType, g.rt)
	g.p("\t}")
	g.p("\tvar d %s", dataType)
	for i, arg := range ix.Args {
		field := "d." + ixgen.GoName(arg.Name)
		off := layout.ArgOffsets[i] - 1
		end := off + arg.Type.Size()
		switch arg.Type.Kind {
		case ixgen.KindBool:
			g.p("\t%s = data[%d] != 0", field, off)
		case ixgen.KindU8:
			g.p("\t%s = data[%d]", field, off)
		case ixgen.KindU16:
			g.p("\t%s = binary.LittleEndian.Uint16(data[%d:%d])", field, off, end)
		case ixgen.KindU32:
			g.p("\t%s = binary.LittleEndian.Uint32(data[%d:%d])", field, off, end)
		case ixgen.KindU64:
			g.p("\t%s = binary.LittleEndian.Uint64(data[%d:%d])", field, off, end)
		case ixgen.KindU128:
			g.p("\t%s = %s.GetUint128(data[%d:%d])", field, g.rt, off, end)
		case ixgen.KindAddress, ixgen.KindBytes:
			g.p("\tcopy(%s[:], data[%d:%d])", field, off, end)
		}
	}
	g.p("\treturn d, nil")
	g.p("}")
}
