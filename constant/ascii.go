package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
   __ _  _ __  (_)  ___  __ _ | |_
  / _` + "`" + ` || '_ \ | | / __|/ _` + "`" + ` || __|
 | (_| || | | || || (__| (_| || |_
  \__,_||_| |_||_| \___|\__,_| \__|`
