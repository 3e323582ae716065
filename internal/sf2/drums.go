package sf2

import "strings"

// drumNote is a General MIDI percussion key and its choke group.
type drumNote struct {
	Key            int
	ExclusiveClass int
}

// hiHatClass chokes open, closed and pedal hats against each other.
const hiHatClass = 1

// gmDrums maps lower-cased sample names to the GM percussion key map.
var gmDrums = map[string]drumNote{
	// Kicks
	"kick":        {36, 0},
	"kick drum":   {36, 0},
	"bass drum":   {36, 0},
	"bassdrum":    {36, 0},
	"bd":          {36, 0},
	"kick2":       {35, 0},
	"kick 2":      {35, 0},
	"acoustic bd": {35, 0},

	// Snares and hand percussion
	"snare":      {38, 0},
	"sd":         {38, 0},
	"snare2":     {40, 0},
	"snare 2":    {40, 0},
	"rim":        {37, 0},
	"rimshot":    {37, 0},
	"side stick": {37, 0},
	"sidestick":  {37, 0},
	"clap":       {39, 0},
	"handclap":   {39, 0},
	"hand clap":  {39, 0},

	// Hats
	"hihat":         {42, hiHatClass},
	"hi-hat":        {42, hiHatClass},
	"hat":           {42, hiHatClass},
	"hh":            {42, hiHatClass},
	"ch":            {42, hiHatClass},
	"chh":           {42, hiHatClass},
	"closed hat":    {42, hiHatClass},
	"closedhat":     {42, hiHatClass},
	"closed hihat":  {42, hiHatClass},
	"closed hi-hat": {42, hiHatClass},
	"pedal hat":     {44, hiHatClass},
	"pedalhat":      {44, hiHatClass},
	"pedal hihat":   {44, hiHatClass},
	"phh":           {44, hiHatClass},
	"open hat":      {46, hiHatClass},
	"openhat":       {46, hiHatClass},
	"open hihat":    {46, hiHatClass},
	"open hi-hat":   {46, hiHatClass},
	"oh":            {46, hiHatClass},
	"ohh":           {46, hiHatClass},

	// Toms
	"floor tom":      {41, 0},
	"low floor tom":  {41, 0},
	"high floor tom": {43, 0},
	"low tom":        {45, 0},
	"lt":             {45, 0},
	"tom":            {47, 0},
	"mid tom":        {47, 0},
	"mt":             {47, 0},
	"hi mid tom":     {48, 0},
	"high tom":       {50, 0},
	"hi tom":         {50, 0},
	"ht":             {50, 0},

	// Cymbals
	"crash":     {49, 0},
	"crash2":    {57, 0},
	"crash 2":   {57, 0},
	"ride":      {51, 0},
	"ride2":     {59, 0},
	"ride 2":    {59, 0},
	"ride bell": {53, 0},
	"bell":      {53, 0},
	"china":     {52, 0},
	"splash":    {55, 0},

	// Percussion
	"tambourine":    {54, 0},
	"cowbell":       {56, 0},
	"vibraslap":     {58, 0},
	"bongo":         {60, 0},
	"hi bongo":      {60, 0},
	"low bongo":     {61, 0},
	"conga":         {63, 0},
	"mute conga":    {62, 0},
	"low conga":     {64, 0},
	"timbale":       {65, 0},
	"low timbale":   {66, 0},
	"agogo":         {67, 0},
	"low agogo":     {68, 0},
	"cabasa":        {69, 0},
	"maracas":       {70, 0},
	"shaker":        {70, 0},
	"whistle":       {71, 0},
	"long whistle":  {72, 0},
	"guiro":         {73, 0},
	"long guiro":    {74, 0},
	"clave":         {75, 0},
	"claves":        {75, 0},
	"woodblock":     {76, 0},
	"wood block":    {76, 0},
	"low woodblock": {77, 0},
	"cuica":         {79, 0},
	"mute cuica":    {78, 0},
	"triangle":      {81, 0},
	"mute triangle": {80, 0},
}

// lookupDrum resolves a sample name against the GM drum map.
func lookupDrum(name string) (drumNote, bool) {
	d, ok := gmDrums[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}
