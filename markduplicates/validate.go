package markduplicates

import (
	"fmt"
)

func validate(opts *Opts) error {
	if len(opts.UmiFile) > 0 && !opts.UseUmis {
		return fmt.Errorf("umi-file is set, but use-umis is false")
	}
	if len(opts.KnownUmis) > 0 && !opts.UseUmis {
		return fmt.Errorf("known umis are set, but use-umis is false")
	}
	if len(opts.UmiFile) > 0 && len(opts.KnownUmis) == 0 {
		return fmt.Errorf("umi-file %s is set, but its content has not been loaded", opts.UmiFile)
	}
	return nil
}
