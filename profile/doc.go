// Package profile writes runtime profiles of a command.
//
// Profiles are requested with one repeatable flag naming the profile kind
// and the output file, in the same level=value style as the chat color
// flag:
//
//	chatlog --profile cpu=cpu.prof --profile heap=heap.prof emit hello
//
// Wire a [Config] into a cobra root so profiling covers the subcommand:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	var p *profile.Profiler
//	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
//	    var err error
//	    p, err = cfg.NewProfiler()
//	    if err != nil {
//	        return err
//	    }
//	    return p.Start()
//	}
//
//	err := rootCmd.Execute()
//	err = errors.Join(err, p.Stop())
//
// A [Profiler] with no profiles requested does nothing, not even change the
// runtime sampling rates.
package profile
