package modes

// builtinNames is indexed by built-in mode id.
var builtinNames = [...]string{
	// 0
	"Rainbow Gradual Chase",
	"Rainbow Comet",
	"Rainbow Segment",
	"Rainbow Wave",
	"Rainbow Meteor",
	"Rainbow Gradual",
	"Rainbow Jump",
	"Rainbow Stars",
	"Rainbow Fade In Out",
	"Rainbow Spin",
	// 10
	"Red Stacking",
	"Green Stacking",
	"Blue Stacking",
	"Yellow Stacking",
	"Cyan Stacking",
	"Purple Stacking",
	"White Stacking",
	"Full Color Stack",
	"Red to Green Stack",
	"Green to Blue Stack",
	// 20
	"Blue to Yellow Stack",
	"Yellow to Cyan Stack",
	"Cyan to Purple Stack",
	"Purple to White Stack",
	"Red Comet",
	"Green Comet",
	"Blue Comet",
	"Yellow Comet",
	"Cyan Comet",
	"Purple Comet",
	// 30
	"White Comet",
	"Red Meteor",
	"Green Meteor",
	"Blue Meteor",
	"Yellow Meteor",
	"Cyan Meteor",
	"Purple Meteor",
	"White Meteor",
	"Red Wave",
	"Green Wave",
	// 40
	"Blue Wave",
	"Yellow Wave",
	"Cyan Wave",
	"Purple Wave",
	"White Wave",
	"Red Green Wave",
	"Red Blue Wave",
	"Red Yellow Wave",
	"Red Cyan Wave",
	"Red Purple Wave",
	// 50
	"Red White Wave",
	"Green Blue Wave",
	"Green Yellow Wave",
	"Green Cyan Wave",
	"Green Purple Wave",
	"Green White Wave",
	"Blue Yellow Wave",
	"Blue Cyan Wave",
	"Blue Purple Wave",
	"Blue White Wave",
	// 60
	"Yellow Cyan Wave",
	"Yellow Purple Wave",
	"Yellow White Wave",
	"Cyan Purple Wave",
	"Cyan White Wave",
	"Purple White Wave",
	"Red Dot Pulse",
	"Green Dot Pulse",
	"Blue Dot Pulse",
	"Yellow Dot Pulse",
	// 70
	"Cyan Dot Pulse",
	"Purple Dot Pulse",
	"White Dot Pulse",
	"Red Green Blank Pulse",
	"Green Blue Blank Pulse",
	"Blue Yellow Blank Pulse",
	"Yellow Cyan Blank Pulse",
	"Cyan Purple Blank Pulse",
	"Purple White Blank Pulse",
	"Red with Purple Pulse",
	// 80
	"Green with Cyan Pulse",
	"Blue with Yellow Pulse",
	"Yellow with Blue Pulse",
	"Cyan with Green Pulse",
	"Purple with Purple Pulse",
	"Red Comet Spin",
	"Green Comet Spin",
	"Blue Comet Spin",
	"Yellow Comet Spin",
	"Cyan Comet Spin",
	// 90
	"Purple Comet Spin",
	"White Comet Spin",
	"Red Dot Spin",
	"Green Dot Spin",
	"Blue Dot Spin",
	"Yellow Dot Spin",
	"Cyan Dot Spin",
	"Purple Dot Spin",
	"White Dot Spin",
	"Red Segment Spin",
	// 100
	"Green Segment Spin",
	"Blue Segment Spin",
	"Yellow Segment Spin",
	"Cyan Segment Spin",
	"Purple Segment Spin",
	"White Segment Spin",
	"Red Green Gradual Snake",
	"Red Blue Gradual Snake",
	"Red Yellow Gradual Snake",
	"Red Cyan Gradual Snake",
	// 110
	"Red Purple Gradual Snake",
	"Red White Gradual Snake",
	"Green Blue Gradual Snake",
	"Green Yellow Gradual Snake",
	"Green Cyan Gradual Snake",
	"Green Purple Gradual Snake",
	"Green White Gradual Snake",
	"Blue Yellow Gradual Snake",
	"Blue Cyan Gradual Snake",
	"Blue Purple Gradual Snake",
	// 120
	"Blue White Gradual Snake",
	"Yellow Cyan Gradual Snake",
	"Yellow Purple Gradual Snake",
	"Yellow White Gradual Snake",
	"Cyan Purple Gradual Snake",
	"Cyan White Gradual Snake",
	"Purple White Gradual Snake",
	"Red White Blank Snake",
	"Green White Blank Snake",
	"Blue White Blank Snake",
	// 130
	"Yellow White Blank Snake",
	"Cyan White Blank Snake",
	"Purple White Blank Snake",
	"Green Yellow White Snake",
	"Red Green White Snake",
	"Red Yellow Snake",
	"Red White Snake",
	"Green White Snake",
	"Red Stars",
	"Green Stars",
	// 140
	"Blue Stars",
	"Yellow Stars",
	"Cyan Stars",
	"Purple Stars",
	"White Stars",
	"Red Background Stars",
	"Green Background Stars",
	"Blue Background Stars",
	"Yellow Background Stars",
	"Cyan Background Stars",
	// 150
	"Purple Background Stars",
	"Red White Background Stars",
	"Green White Background Stars",
	"Blue White Background Stars",
	"Yellow White Background Stars",
	"Cyan White Background Stars",
	"Purple White Background Stars",
	"White White Background Stars",
	"Red Breath",
	"Green Breath",
	// 160
	"Blue Breath",
	"Yellow Breath",
	"Cyan Breath",
	"Purple Breath",
	"White Breath",
	"Red Yellow Fire",
	"Red Purple Fire",
	"Green Yellow Fire",
	"Green Cyan Fire",
	"Blue Purple Fire",
	// 170
	"Blue Cyan Fire",
	"Red Strobe",
	"Green Strobe",
	"Blue Strobe",
	"Yellow Strobe",
	"Cyan Strobe",
	"Purple Strobe",
	"White Strobe",
	"Red Blue White Strobe",
	"Full Color Strobe",
}

// customNames is indexed by custom mode id.
var customNames = [...]string{
	"Static",
	"Chase Forward",
	"Chase Backward",
	"Chase Middle to Out",
	"Chase Out to Middle",
	"Stars",
	"Breath",
	"Comet Forward",
	"Comet Backward",
	"Comet Middle to Out",
	"Comet Out to Middle",
	"Wave Forward",
	"Wave Backward",
	"Wave Middle to Out",
	"Wave Out to Middle",
	"Strobe",
	"Solid Fade",
}
