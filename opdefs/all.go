package opdefs

/*
	Sole purpose of this package is to import all the element functions such that
	if some binary imports the package opdefs, all functions get registered too.
*/

import (
	_ "tabula/opdefs/cast"
	_ "tabula/opdefs/dt"
	_ "tabula/opdefs/str"
)
