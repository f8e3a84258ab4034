package cmd

const welcome = `Starklings - An interactive tutorial to learn Cairo and Starknet

       _             _    _ _
      | |           | |  | (_)
   ___| |_ __ _ _ __| | _| |_ _ __   __ _ ___
  / __| __/ _` + "`" + ` | '__| |/ / | | '_ \ / _` + "`" + ` / __|
  \__ \ || (_| | |  |   <| | | | | | (_| \__ \
  |___/\__\__,_|_|  |_|\_\_|_|_| |_|\__, |___/
                                     __/ |
                                    |___/`

const defaultOut = `Thanks for installing starklings!

Is this your first time? Don't worry, starklings is made for beginners!
We are going to teach you a lot of things about Starknet and Cairo.

Here's how starklings works:

1. To start starklings run ` + "`starklings watch`" + `
2. It'll automatically start with the first exercise. Don't get confused by
error messages popping up as soon as you run starklings! This is part of the
exercise that you're supposed to solve, so open the exercise file in an editor
and start your detective work!
3. If you're stuck on an exercise, there is a helpful hint you can view by
typing ` + "`hint`" + ` (in watch mode), or running ` + "`starklings hint exercise_name`" + `.
4. When you have solved the exercise successfully, remove the
` + "`// I AM NOT DONE`" + ` comment to move on to the next exercise.
5. If an exercise doesn't make sense to you, feel free to open an issue on GitHub!
(https://github.com/shramee/starklings-cairo1/issues/new).

Got all that? Great! To get started, run ` + "`starklings watch`" + ` in order to get
the first exercise. Make sure to have your editor open!`

const finishLine = `+----------------------------------------------------+
|            You made it to the finish line!         |
+--------------------------  ------------------------+

We hope you enjoyed learning about Cairo and Starknet.
If you noticed any issues, please don't hesitate to report them to our repo.
https://github.com/shramee/starklings-cairo1/`
