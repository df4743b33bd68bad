package main

import (
	"fmt"

	"github.com/npillmayer/keylayout/ucquery"
	"github.com/pterm/pterm"
)

// dumpOp prints the text produced by every keycode with every modifier
// combination, optionally restricted to a range of keycodes.
func dumpOp(intp *Intp, op *Op) (err error, stop bool) {
	l := intp.keymap.Current()
	from, to := 0, l.KeycodeCount()-1
	if _, ok := op.arg(0); ok {
		if from, err = op.intArg(0); err != nil {
			return
		}
		to = from
	}
	if _, ok := op.arg(1); ok {
		if to, err = op.intArg(1); err != nil {
			return
		}
	}
	if to >= l.KeycodeCount() {
		to = l.KeycodeCount() - 1
	}
	if from > to {
		return fmt.Errorf("empty keycode range %d–%d", from, to), false
	}
	data := [][]string{ucquery.ModifierHeader(l)}
	for k := from; k <= to; k++ {
		data = append(data, ucquery.KeycodeRow(l, uint16(k)))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func modsOp(intp *Intp, op *Op) (err error, stop bool) {
	data := [][]string{
		{"Combo", "Symbols", "Shift", "Command", "Control", "Option", "Caps"},
	}
	for _, mod := range intp.keymap.Current().ModifierCombos() {
		f := mod.Flags()
		data = append(data, []string{
			fmt.Sprintf("%d", mod),
			ucquery.ModifierString(mod),
			yesno(f.Shift),
			yesno(f.Command),
			yesno(f.Control),
			yesno(f.Option),
			yesno(f.Caps),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Println("Control, Caps Lock and Command bits are unverified")
	return nil, false
}

func infoOp(intp *Intp, op *Op) (err error, stop bool) {
	l := intp.keymap.Current()
	pterm.Printf("Header: format=%#04x version=%d features=%#x\n",
		l.Header.Format, l.Header.DataVersion, l.Header.FeatureInfo)
	data := [][]string{
		{"#", "Kbd types", "Modifiers", "Characters", "States", "Terminators", "Sequences"},
	}
	for i, kt := range l.KeyTables {
		sel := fmt.Sprintf("%d", i)
		if i == l.Selected {
			sel += " *"
		}
		data = append(data, []string{
			sel,
			fmt.Sprintf("%d–%d", kt.MinKbdType, kt.MaxKbdType),
			fmt.Sprintf("%d", kt.ModifierOffset),
			fmt.Sprintf("%d", kt.CharacterOffset),
			fmt.Sprintf("%d", kt.StateRecordOffset),
			fmt.Sprintf("%d", kt.StateTerminatorOffset),
			fmt.Sprintf("%d", kt.SequenceOffset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	n := 0
	for range l.Chars() {
		n++
	}
	pterm.Printf("%d keycodes, %d modifier combinations, %d characters\n",
		l.KeycodeCount(), len(l.ModifierCombos()), n)
	pterm.Printf("Issues: errors=%d warnings=%d\n", len(l.Errors()), len(l.Warnings()))
	return nil, false
}

func errorsOp(intp *Intp, op *Op) (err error, stop bool) {
	l := intp.keymap.Current()
	errs, warns := l.Errors(), l.Warnings()
	if len(errs)+len(warns) == 0 {
		pterm.Println("No issues")
		return
	}
	for _, e := range errs {
		pterm.Error.Println(e.Error())
	}
	for _, w := range warns {
		pterm.Warning.Println(w.String())
	}
	return
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
